package models

// AddressSuggestion is one autocomplete prediction for a partial address.
// Suggestions are transient; they live for a single keystroke-debounced query
// and are discarded once the driver picks one or clears the input.
type AddressSuggestion struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}
