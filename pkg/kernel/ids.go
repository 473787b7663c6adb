package kernel

type CandidateID string

func NewCandidateID(id string) CandidateID { return CandidateID(id) }
func (c CandidateID) String() string       { return string(c) }
func (c CandidateID) IsEmpty() bool        { return string(c) == "" }

type RecruiterID string

func NewRecruiterID(id string) RecruiterID { return RecruiterID(id) }
func (r RecruiterID) String() string       { return string(r) }
func (r RecruiterID) IsEmpty() bool        { return string(r) == "" }

type ConversationID string

func NewConversationID(id string) ConversationID { return ConversationID(id) }
func (c ConversationID) String() string          { return string(c) }
func (c ConversationID) IsEmpty() bool           { return string(c) == "" }
