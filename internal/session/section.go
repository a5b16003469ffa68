package session

// Section numbers a TOEIC part. Parts 1-4 are listening, 5-7 reading.
type Section int

const (
	MinSection Section = 1
	MaxSection Section = 7

	lastListeningSection Section = 4
)

var sectionNames = map[Section]string{
	1: "Photographs",
	2: "Question-Response",
	3: "Conversations",
	4: "Talks",
	5: "Incomplete Sentences",
	6: "Text Completion",
	7: "Reading Comprehension",
}

// Valid reports whether s is a known part number.
func (s Section) Valid() bool {
	return s >= MinSection && s <= MaxSection
}

// Name returns the display name, or "" for an unknown section.
func (s Section) Name() string {
	return sectionNames[s]
}

// IsListening reports whether s belongs to the listening half of the exam.
func (s Section) IsListening() bool {
	return s.Valid() && s <= lastListeningSection
}
