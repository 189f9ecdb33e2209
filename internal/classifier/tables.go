package classifier

type categoryKeywords struct {
	category Category
	keywords []string
}

// Ordered, not a map: iteration order decides ties.
var categoryTable = []categoryKeywords{
	{CategoryScheduling, []string{
		"meeting", "schedule", "call", "appointment", "deadline",
		"calendar", "book", "arrange", "plan", "organize",
	}},
	{CategoryFinance, []string{
		"payment", "invoice", "bill", "budget", "cost", "expense",
		"purchase", "financial", "money", "pay", "pricing",
	}},
	{CategoryTechnical, []string{
		"bug", "fix", "error", "install", "repair", "maintain",
		"update", "debug", "code", "system", "software", "hardware",
	}},
	{CategorySafety, []string{
		"safety", "hazard", "inspection", "compliance", "ppe",
		"risk", "incident", "emergency", "secure", "protocol",
	}},
}

var highPriorityKeywords = []string{
	"urgent", "asap", "immediately", "today", "critical",
	"emergency", "now", "deadline",
}

var mediumPriorityKeywords = []string{
	"soon", "this week", "important", "priority", "upcoming",
}

var suggestedActions = map[Category][4]string{
	CategoryScheduling: {
		"Block calendar time",
		"Send meeting invite",
		"Prepare meeting agenda",
		"Set reminder notification",
	},
	CategoryFinance: {
		"Check budget availability",
		"Get approval from manager",
		"Generate invoice",
		"Update financial records",
	},
	CategoryTechnical: {
		"Diagnose the issue",
		"Check system resources",
		"Assign to technician",
		"Document the fix",
	},
	CategorySafety: {
		"Conduct safety inspection",
		"File incident report",
		"Notify safety supervisor",
		"Update safety checklist",
	},
	CategoryGeneral: {
		"Review task details",
		"Gather required information",
		"Create action plan",
		"Track progress",
	},
}

var actionVerbs = []string{
	"schedule", "send", "prepare", "review", "check", "create",
	"update", "fix", "install", "complete", "submit", "approve",
	"assign", "notify", "conduct", "generate", "document",
}
