// Package docs registers the OpenAPI description of the journal API with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/workspaces": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"workspaces"
				],
				"summary": "List workspaces",
				"parameters": [],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"type": "object"
							}
						}
					}
				}
			}
		},
		"/workspaces/{workspace}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"workspaces"
				],
				"summary": "Describe a workspace",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/workspaces/{workspace}/checklist": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"checklist"
				],
				"summary": "Get the checklist",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/workspaces/{workspace}/checklist/evaluate": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"checklist"
				],
				"summary": "Evaluate checklist answers",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ChecklistAnswersRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/workspaces/{workspace}/checklist/approve": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"checklist"
				],
				"summary": "Approve a trade",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ChecklistAnswersRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/workspaces/{workspace}/checklist/attempts": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"checklist"
				],
				"summary": "Log a checklist attempt",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.ChecklistAnswersRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/workspaces/{workspace}/checklist/stats": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"checklist"
				],
				"summary": "Checklist statistics",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/workspaces/{workspace}/trades": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"trades"
				],
				"summary": "List trades",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "open, closed or all",
						"name": "status",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"type": "object"
							}
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"trades"
				],
				"summary": "Open a trade",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Checklist approval token",
						"name": "X-Checklist-Approval",
						"in": "header"
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CreateTradeRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"403": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"422": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/workspaces/{workspace}/trades/risk-budget": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"trades"
				],
				"summary": "Risk budget",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Account key",
						"name": "account",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/workspaces/{workspace}/trades/{id}/close": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"trades"
				],
				"summary": "Close a trade",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Trade ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CloseTradeRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/workspaces/{workspace}/trades/{id}/checklist": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"checklist"
				],
				"summary": "Trade checklist",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "Trade ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/workspaces/{workspace}/history": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"trades"
				],
				"summary": "Trade history",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "open, closed or all",
						"name": "status",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/workspaces/{workspace}/balance": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"balance"
				],
				"summary": "Balance summary",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"balance"
				],
				"summary": "Adjust the balance",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.BalanceAdjustRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/workspaces/{workspace}/missed-trades": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"missed-trades"
				],
				"summary": "List missed trades",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"type": "object"
							}
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"missed-trades"
				],
				"summary": "Record a missed trade",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.CreateMissedTradeRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		},
		"/workspaces/{workspace}/missed-trades/analytics": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"missed-trades"
				],
				"summary": "Missed trade analytics",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			}
		},
		"/workspaces/{workspace}/plan": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"plan"
				],
				"summary": "Get the trading plan",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				}
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"plan"
				],
				"summary": "Save the trading plan",
				"parameters": [
					{
						"type": "string",
						"description": "Workspace key",
						"name": "workspace",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/dto.SavePlanRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"$ref": "#/definitions/dto.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				]
			}
		}
	},
	"definitions": {
		"dto.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string",
					"example": "Error: instrument is required"
				}
			}
		},
		"dto.ChecklistAnswersRequest": {
			"type": "object",
			"properties": {
				"responses": {
					"type": "object",
					"additionalProperties": {
						"type": "string",
						"enum": [
							"yes",
							"no"
						]
					}
				},
				"zone": {
					"type": "string",
					"enum": [
						"Green",
						"Amber",
						"Red"
					]
				}
			}
		},
		"dto.CreateTradeRequest": {
			"type": "object",
			"required": [
				"instrument",
				"direction"
			],
			"properties": {
				"approval_token": {
					"type": "string"
				},
				"instrument": {
					"type": "string",
					"example": "EURUSD"
				},
				"direction": {
					"type": "string",
					"example": "long"
				},
				"entry_url": {
					"type": "string"
				},
				"notes": {
					"type": "string"
				},
				"entry_type": {
					"type": "string"
				},
				"rule": {
					"type": "string"
				},
				"zone": {
					"type": "string"
				},
				"pattern": {
					"type": "string"
				},
				"stop_size": {
					"type": "string",
					"example": "25.50"
				},
				"risk_amount": {
					"type": "string",
					"example": "25.50"
				},
				"account": {
					"type": "string"
				},
				"option_type": {
					"type": "string"
				},
				"strike_price": {
					"type": "string",
					"example": "25.50"
				},
				"expiry_date": {
					"type": "string",
					"example": "2024-06-21"
				},
				"contracts": {
					"type": "integer"
				},
				"premium": {
					"type": "string",
					"example": "25.50"
				}
			}
		},
		"dto.CloseTradeRequest": {
			"type": "object",
			"properties": {
				"exit_url": {
					"type": "string"
				},
				"pnl": {
					"type": "string",
					"example": "25.50"
				},
				"notes": {
					"type": "string"
				}
			}
		},
		"dto.BalanceAdjustRequest": {
			"type": "object",
			"required": [
				"amount"
			],
			"properties": {
				"amount": {
					"type": "string",
					"example": "25.50"
				},
				"reason": {
					"type": "string"
				},
				"account": {
					"type": "string"
				}
			}
		},
		"dto.CreateMissedTradeRequest": {
			"type": "object",
			"required": [
				"instrument",
				"direction",
				"potential_return"
			],
			"properties": {
				"instrument": {
					"type": "string"
				},
				"direction": {
					"type": "string"
				},
				"before_url": {
					"type": "string"
				},
				"after_url": {
					"type": "string"
				},
				"pattern": {
					"type": "string"
				},
				"potential_return": {
					"type": "string",
					"example": "25.50"
				}
			}
		},
		"dto.SavePlanRequest": {
			"type": "object",
			"properties": {
				"content": {
					"type": "string"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Trade Journal API",
	Description:      "Multi-workspace trade journal with a pre-trade checklist gate, balance ledger and analytics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
