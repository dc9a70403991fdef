package checklist

// ItemType distinguishes yes/no questions from the zone selector.
type ItemType string

const (
	ItemTypeBoolean ItemType = "boolean"
	ItemTypeZone    ItemType = "zone"
)

// Item is one checklist question.
type Item struct {
	ID             string   `json:"id"`
	Question       string   `json:"question"`
	Type           ItemType `json:"type"`
	ReminderTitle  string   `json:"reminder_title,omitempty"`
	ReminderPoints []string `json:"reminder_points,omitempty"`
	Note           string   `json:"note,omitempty"`
}

// Section groups related items.
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Intro is shown above the checklist.
const Intro = "A decision gate. If you cannot answer YES to the majors, you do not take the trade."

// ZoneItemID is the id of the zone selector item.
const ZoneItemID = "zone"

const (
	ZoneGreen = "Green"
	ZoneAmber = "Amber"
	ZoneRed   = "Red"
)

// Zones lists the accepted zone values.
var Zones = []string{ZoneGreen, ZoneAmber, ZoneRed}

var sections = []Section{
	{
		ID:    "section1",
		Title: "SECTION 1: FORECASTING & CONTEXT",
		Items: []Item{
			{
				ID:            "forecastedToday",
				Question:      "Did I forecast this pair today using TLFS?",
				Type:          ItemTypeBoolean,
				ReminderTitle: "TLFS Reminder (Traffic Light Forecasting System):",
				ReminderPoints: []string{
					"Green: Ideal, highest-probability scenario.",
					"Amber: Still good, alternate path.",
					"Red: Worst-case or least-likely scenario.",
					`Each scenario must include an override ("If price does X instead...").`,
				},
				Note: "If you did not forecast it today, you are not allowed to trade it.",
			},
			{
				ID:       "scenarioPlayingOut",
				Question: "Is price currently playing out one of my forecasted scenarios?",
				Type:     ItemTypeBoolean,
				Note:     `Not "something vaguely close." It must be one of the exact Green or Amber scenarios.`,
			},
			{
				ID:       "topSetup",
				Question: "Is this one of my top 10 go-to setups?",
				Type:     ItemTypeBoolean,
				Note:     "If not, you are improvising.",
			},
		},
	},
	{
		ID:    "section2",
		Title: "SECTION 2: LOCATION CHECK (RO3 + ZONES)",
		Items: []Item{
			{
				ID:            "ro3Match",
				Question:      "Does the approach match RO3?",
				Type:          ItemTypeBoolean,
				ReminderTitle: "RO3 Reminder (Rule of Three, Nature of Approach):",
				ReminderPoints: []string{
					"Impulsive approach: Strong, fast push into structure. Action: Avoid raw entries. Wait for impulse away + first correction.",
					"Corrective approach: Slow grind into level. Action: Still avoid raw edges. Wait for impulse away + first correction.",
					"Structural approach: Clean channel into level, sometimes piercing. Action: Most attractive for entries (risk entry OR retrace entry).",
				},
				Note: "If the approach does not match your plan, skip the trade.",
			},
			{
				ID:       ZoneItemID,
				Question: "What zone is price currently in (Green / Amber / Red)?",
				Type:     ItemTypeZone,
				Note:     "Default rule: No new trades in Red Zone. If zone is not supportive and your ego still wants to enter, stop.",
			},
		},
	},
	{
		ID:    "section3",
		Title: "SECTION 3: SETUP QUALITY (VALID / HP / INVALID)",
		Items: []Item{
			{
				ID:            "isHighQuality",
				Question:      "Is this trade at least a GOOD VALID, preferably HP?",
				Type:          ItemTypeBoolean,
				ReminderTitle: "Validity Reminder:",
				ReminderPoints: []string{
					"HP (High Probability): Many strong confluences, few negatives.",
					"Valid: Positives roughly equal negatives but still meets criteria.",
					"Invalid: Fails Falcon entry criteria and cannot be taken.",
				},
				Note: "If it is barely Valid or you are trying to force it into HP, stop.",
			},
			{
				ID:       "structureAlignment",
				Question: "Does the setup align with BOTH HTF and LTF structure?",
				Type:     ItemTypeBoolean,
				Note:     "No conflict. The story must be clean across timeframes.",
			},
			{
				ID:       "playbookPattern",
				Question: "Does the entry pattern fit Falcon's playbook?",
				Type:     ItemTypeBoolean,
				Note:     "Flags, channels, wedges, patterns-within-patterns. Not randomness, not vibes.",
			},
		},
	},
	{
		ID:    "section4",
		Title: "SECTION 4: RISK, TARGETS & EXECUTION",
		Items: []Item{
			{
				ID:       "riskCalculated",
				Question: "Have I calculated risk precisely at 1%?",
				Type:     ItemTypeBoolean,
				Note:     "If you are fudging this, you are not a trader. You are a gambler.",
			},
			{
				ID:       "riskReward",
				Question: "Does this trade allow RR ≥ 3:1?",
				Type:     ItemTypeBoolean,
				Note:     "And does the market have room to actually travel that distance?",
			},
			{
				ID:       "stopLossLogic",
				Question: "Is my stop loss placed logically (not tightened emotionally)?",
				Type:     ItemTypeBoolean,
				Note:     "Safe, justified, and placed relative to structure, not fear.",
			},
			{
				ID:       "breakevenPlan",
				Question: "Can I reasonably move to breakeven before the next major inflection?",
				Type:     ItemTypeBoolean,
				Note:     "If not, you are exposing yourself to stupid losses.",
			},
			{
				ID:       "spreadsAcceptable",
				Question: "Are spreads acceptable and not in a bad session (e.g. rollover)?",
				Type:     ItemTypeBoolean,
				Note:     "If not, you are feeding the broker.",
			},
			{
				ID:       "ownAnalysis",
				Question: "Is this my own analysis?",
				Type:     ItemTypeBoolean,
				Note:     "If it is influenced by someone else's idea, you have already broken the system.",
			},
			{
				ID:       "acceptedLoss",
				Question: "Have I fully accepted that this might be a loss, even if it is perfect?",
				Type:     ItemTypeBoolean,
				Note:     "If you emotionally need this trade to work, you are not ready to take it.",
			},
		},
	},
}

// Sections returns a copy of the checklist sections in display order.
func Sections() []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		items := make([]Item, len(s.Items))
		copy(items, s.Items)
		out[i] = Section{ID: s.ID, Title: s.Title, Items: items}
	}
	return out
}

// BooleanItemIDs returns the ids of every yes/no question in display order.
func BooleanItemIDs() []string {
	var ids []string
	for _, s := range sections {
		for _, it := range s.Items {
			if it.Type == ItemTypeBoolean {
				ids = append(ids, it.ID)
			}
		}
	}
	return ids
}
