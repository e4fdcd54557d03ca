package mcp

import "github.com/mark3labs/mcp-go/mcp"

const dateDescription = "Date as YYYY-MM-DD or RFC 3339. Defaults to now. " +
	"A date-only value uses the schedule start time of day."

var addToolDef = mcp.NewTool("fact_add",
	mcp.WithDescription("Add a flashcard. New facts start at level 1 and are due every day."),
	mcp.WithString("question", mcp.Required(), mcp.Description("Question shown during review")),
	mcp.WithString("answer", mcp.Required(), mcp.Description("Answer revealed after the question")),
)

var listToolDef = mcp.NewTool("fact_list",
	mcp.WithDescription("List facts in insertion order with pagination."),
	mcp.WithNumber("level", mcp.Description("Only facts at this level")),
	mcp.WithNumber("limit", mcp.Description("Maximum items to return (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Items to skip")),
)

var dueToolDef = mcp.NewTool("fact_due",
	mcp.WithDescription("List the facts scheduled for review on a date, with the cycle day and due levels."),
	mcp.WithString("date", mcp.Description(dateDescription)),
	mcp.WithBoolean("sort_by_level", mcp.Description("Highest level first instead of insertion order")),
	mcp.WithBoolean("hide_answers", mcp.Description("Omit answers so the caller can quiz")),
)

var reviewToolDef = mcp.NewTool("fact_review",
	mcp.WithDescription("Record a review. Correct moves the fact up one level (max 7); wrong sends it back to level 1."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Fact ID")),
	mcp.WithBoolean("correct", mcp.Required(), mcp.Description("Whether the answer was recalled correctly")),
	mcp.WithString("date", mcp.Description(dateDescription)),
)

var statsToolDef = mcp.NewTool("fact_stats",
	mcp.WithDescription("Summarize facts per level and what is due on a date."),
	mcp.WithString("date", mcp.Description(dateDescription)),
)

var scheduleToolDef = mcp.NewTool("schedule_show",
	mcp.WithDescription("Render the 64-day review cycle with the given date's row highlighted."),
	mcp.WithString("format", mcp.Enum("text", "markdown", "html"), mcp.Description("Output format (default text)")),
	mcp.WithString("date", mcp.Description(dateDescription)),
)
