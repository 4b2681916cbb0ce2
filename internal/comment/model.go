package comment

// Comment is a product review stored under comments/{productId}/{commentId}.
type Comment struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
}

// PostFailedMessage is shown when a review could not be stored remotely.
const PostFailedMessage = "Could not post review (Offline)"
