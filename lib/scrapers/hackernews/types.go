package hackernews

// VoteDir is the direction of a vote affordance.
type VoteDir int

const (
	VoteUp VoteDir = iota
	VoteDown
)

func (d VoteDir) String() string {
	if d == VoteUp {
		return "up"
	}
	return "down"
}

// VoteAction is a one-shot, session-scoped link that casts a vote when
// fetched. It is only valid for the session that scraped the page it came
// from, and expires with that page; nothing here enforces the expiry.
type VoteAction struct {
	Dir  VoteDir
	Href string
}

func (v VoteAction) IsUpvote() bool {
	return v.Dir == VoteUp
}

// Post is a single submission. Records are immutable snapshots of one page
// fetch; refetching produces a fresh value.
type Post struct {
	Id       string
	Title    string
	Url      string
	Username string
	Score    uint
	// CommentCount comes from the listing/header markup and can disagree
	// with len-over-Comments when the site folds dead replies.
	CommentCount uint
	// Comments is always empty for listing records. For submission records
	// it holds the reconstructed reply forest in document order.
	Comments []Comment
	// Vote is the preferred available vote affordance, nil when the session
	// has no voting rights on this post. A downvote here means the post is
	// already upvoted by the current session.
	Vote *VoteAction
}

// Comment is a threaded reply. Depth 0 replies directly to the post.
type Comment struct {
	Id    string
	Depth uint
	// Age is the site's human-readable relative time ("3 hours ago"),
	// kept opaque on purpose.
	Age      string
	Username string
	// ContentHtml is the raw inner markup of the comment body; rendering
	// is left to the caller.
	ContentHtml string
	Children    []Comment

	// A comment can expose neither, one, or both vote links depending on
	// session state and whether the session owns the comment.
	Upvote   *VoteAction
	Downvote *VoteAction
}
