package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post is the base aggregate for authored content. Deletion is always
// logical: the timestamp is set, the row stays.
type Post struct {
	Reference string
	Created   time.Time
	Deleted   *time.Time
	Author    *Profile
	Content   PostContent
	Tags      []string
}

func newPost(author *Profile, content PostContent) Post {
	return Post{
		Reference: uuid.NewString(),
		Created:   time.Now().UTC(),
		Author:    author,
		Content:   content,
	}
}

// Delete marks the post logically deleted. Double deletion is rejected at the
// service layer with a not-found error.
func (p *Post) Delete() {
	if p.Deleted == nil {
		now := time.Now().UTC()
		p.Deleted = &now
	}
}

// SetTags replaces the tag set, deduplicating while keeping first-seen order.
func (p *Post) SetTags(tags []string) {
	if tags == nil {
		p.Tags = nil
		return
	}
	seen := make(map[string]struct{}, len(tags))
	deduped := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		deduped = append(deduped, tag)
	}
	p.Tags = deduped
}

// NewsPost is an announcement authored by a tenant admin.
type NewsPost struct {
	Post
}

// NewNewsPost gates authorship on the admin role.
func NewNewsPost(author *Profile, content PostContent) (*NewsPost, error) {
	if author.User == nil || !author.User.IsAdmin() {
		return nil, ErrUserNotAdmin
	}
	return &NewsPost{Post: newPost(author, content)}, nil
}

// Question can be asked by any active user and owns an ordered answer list.
type Question struct {
	Post
	Answers []*Answer
}

// NewQuestion constructs a question with no role restriction.
func NewQuestion(author *Profile, content PostContent) *Question {
	return &Question{Post: newPost(author, content)}
}

// Answer belongs to exactly one question and links back to it. The nested
// Answers field exists in the model but no service ever populates it.
type Answer struct {
	Post
	Question *Question
	Answers  []*Answer
}

// NewAnswer constructs an answer and appends it to its parent question's
// answer list. The repository keeps this bidirectional link consistent when
// reconstituting from storage.
func NewAnswer(author *Profile, question *Question, content PostContent) *Answer {
	answer := &Answer{
		Post:     newPost(author, content),
		Question: question,
	}
	question.Answers = append(question.Answers, answer)
	return answer
}
