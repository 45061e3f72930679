package classifier

import "context"

// Suggester proposes tags for a piece of content.
type Suggester interface {
	SuggestTags(ctx context.Context, content string) ([]string, error)
}
