package joomla

import "encoding/json"

// State is the Joomla article publishing state.
type State int

const (
	StateUnpublished State = 0
	StatePublished   State = 1
	StateArchived    State = 2
	StateTrashed     State = -2
)

var stateNames = map[State]string{
	StatePublished:   "published",
	StateUnpublished: "unpublished",
	StateArchived:    "archived",
	StateTrashed:     "trashed",
}

func (s State) Name() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s State) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

// ValidStates lists the accepted state values for error messages.
const ValidStates = "1 (published), 0 (unpublished), 2 (archived), -2 (trashed)"

// Attributes is the subset of a Joomla content entity this server cares
// about. Both articles and categories expose id and title; only articles
// carry a state.
type Attributes struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	State State  `json:"state"`
}

// Item is one element of a JSON:API "data" array.
type Item struct {
	Attributes Attributes `json:"attributes"`
}

// ListDocument defers decoding of "data" so a non-array shape can be
// reported as a payload error instead of a generic unmarshal failure.
type ListDocument struct {
	Data json.RawMessage `json:"data"`
}

// ItemDocument is the response shape of a single-entity fetch.
type ItemDocument struct {
	Data Item `json:"data"`
}

// CreatePayload is the article create request body. Field set and defaults
// follow the Joomla content API contract.
type CreatePayload struct {
	Alias       string `json:"alias"`
	ArticleText string `json:"articletext"`
	CatID       int64  `json:"catid"`
	Language    string `json:"language"`
	MetaDesc    string `json:"metadesc"`
	MetaKey     string `json:"metakey"`
	Title       string `json:"title"`
	State       State  `json:"state"`
}
