package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column definitions. Dates are stored as 2006-01-02 text so that
// lexical order matches calendar order on every dialect.

var (
	reviewCardsColumns = []*schema.Column{
		{Name: "learner_id", Type: field.TypeString, Size: 128},
		{Name: "item_id", Type: field.TypeString, Size: 128},
		{Name: "status", Type: field.TypeEnum, Enums: []string{"learning", "reviewing", "mastered"}},
		{Name: "interval_days", Type: field.TypeInt},
		{Name: "ease_factor", Type: field.TypeFloat64},
		{Name: "review_count", Type: field.TypeInt},
		{Name: "next_review_date", Type: field.TypeString, Size: 10},
		{Name: "last_result", Type: field.TypeString, Size: 16, Default: ""},
		{Name: "created_on", Type: field.TypeString, Size: 10},
	}
	reviewCardsTable = &schema.Table{
		Name:       "review_cards",
		Columns:    reviewCardsColumns,
		PrimaryKey: []*schema.Column{reviewCardsColumns[0], reviewCardsColumns[1]},
		Indexes: []*schema.Index{
			{Name: "reviewcard_learner_id_next_review_date", Columns: []*schema.Column{reviewCardsColumns[0], reviewCardsColumns[6]}},
		},
	}

	masteryRecordsColumns = []*schema.Column{
		{Name: "learner_id", Type: field.TypeString, Size: 128},
		{Name: "question_id", Type: field.TypeString, Size: 128},
		{Name: "level", Type: field.TypeInt},
		{Name: "review_count", Type: field.TypeInt},
		{Name: "next_review_date", Type: field.TypeString, Size: 10, Nullable: true},
	}
	masteryRecordsTable = &schema.Table{
		Name:       "mastery_records",
		Columns:    masteryRecordsColumns,
		PrimaryKey: []*schema.Column{masteryRecordsColumns[0], masteryRecordsColumns[1]},
	}

	learnerStatsColumns = []*schema.Column{
		{Name: "learner_id", Type: field.TypeString, Size: 128},
		{Name: "total_answered", Type: field.TypeInt},
		{Name: "total_correct", Type: field.TypeInt},
		{Name: "streak_days", Type: field.TypeInt},
		{Name: "longest_streak", Type: field.TypeInt},
		{Name: "sessions_completed", Type: field.TypeInt},
		{Name: "last_activity_date", Type: field.TypeString, Size: 10, Nullable: true},
	}
	learnerStatsTable = &schema.Table{
		Name:       "learner_stats",
		Columns:    learnerStatsColumns,
		PrimaryKey: []*schema.Column{learnerStatsColumns[0]},
	}

	sessionResultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "learner_id", Type: field.TypeString, Size: 128},
		{Name: "attempted", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeInt},
		{Name: "recorded_at", Type: field.TypeTime},
	}
	sessionResultsTable = &schema.Table{
		Name:       "session_results",
		Columns:    sessionResultsColumns,
		PrimaryKey: []*schema.Column{sessionResultsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionresult_learner_id", Columns: []*schema.Column{sessionResultsColumns[2]}},
		},
	}

	sectionScoresColumns = []*schema.Column{
		{Name: "session_id", Type: field.TypeString, Size: 36},
		{Name: "section", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeInt},
		{Name: "attempted", Type: field.TypeInt},
		{Name: "band", Type: field.TypeEnum, Enums: []string{"weak", "neutral", "strong"}},
		{Name: "position", Type: field.TypeInt},
	}
	sectionScoresTable = &schema.Table{
		Name:       "section_scores",
		Columns:    sectionScoresColumns,
		PrimaryKey: []*schema.Column{sectionScoresColumns[0], sectionScoresColumns[1]},
	}

	reviewEventsColumns = []*schema.Column{
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "learner_id", Type: field.TypeString, Size: 128},
		{Name: "item_id", Type: field.TypeString, Size: 128},
		{Name: "grade", Type: field.TypeString, Size: 16},
		{Name: "from_status", Type: field.TypeString, Size: 16},
		{Name: "to_status", Type: field.TypeString, Size: 16},
		{Name: "interval_days", Type: field.TypeInt},
		{Name: "ease_factor", Type: field.TypeFloat64},
		{Name: "next_review_date", Type: field.TypeString, Size: 10},
		{Name: "recorded_at", Type: field.TypeTime},
	}
	reviewEventsTable = &schema.Table{
		Name:       "review_events",
		Columns:    reviewEventsColumns,
		PrimaryKey: []*schema.Column{reviewEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "reviewevent_learner_id", Columns: []*schema.Column{reviewEventsColumns[1]}},
		},
	}

	answerEventsColumns = []*schema.Column{
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "learner_id", Type: field.TypeString, Size: 128},
		{Name: "question_id", Type: field.TypeString, Size: 128},
		{Name: "correct", Type: field.TypeBool},
		{Name: "from_level", Type: field.TypeInt},
		{Name: "to_level", Type: field.TypeInt},
		{Name: "session_id", Type: field.TypeString, Size: 36, Default: ""},
		{Name: "recorded_at", Type: field.TypeTime},
	}
	answerEventsTable = &schema.Table{
		Name:       "answer_events",
		Columns:    answerEventsColumns,
		PrimaryKey: []*schema.Column{answerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_learner_id", Columns: []*schema.Column{answerEventsColumns[1]}},
		},
	}

	globalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	globalSequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    globalSequenceColumns,
		PrimaryKey: []*schema.Column{globalSequenceColumns[0]},
	}

	metaColumns = []*schema.Column{
		{Name: "name", Type: field.TypeString, Size: 64},
		{Name: "value", Type: field.TypeString, Size: 255},
	}
	metaTable = &schema.Table{
		Name:       "meta",
		Columns:    metaColumns,
		PrimaryKey: []*schema.Column{metaColumns[0]},
	}

	// Tables lists every table the store migrates.
	Tables = []*schema.Table{
		reviewCardsTable,
		masteryRecordsTable,
		learnerStatsTable,
		sessionResultsTable,
		sectionScoresTable,
		reviewEventsTable,
		answerEventsTable,
		globalSequenceTable,
		metaTable,
	}
)
