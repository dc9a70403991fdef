package entity

// WorkspaceKind identifies the product family a workspace journals.
type WorkspaceKind string

const (
	WorkspaceKindStocks  WorkspaceKind = "stocks"
	WorkspaceKindForex   WorkspaceKind = "forex"
	WorkspaceKindOptions WorkspaceKind = "options"
)
