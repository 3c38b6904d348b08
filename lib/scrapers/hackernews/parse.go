package hackernews

import (
	"strconv"
	"strings"

	"hnclient/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// UnknownUser is substituted when a listing row carries no username link,
// which happens for job postings.
const UnknownUser = "<unknown>"

// each indentation level of a comment is one spacer image this many pixels
// wide
const indentUnit = 40

func extractUsername(scope *goquery.Selection) (string, error) {
	name := htmlutil.Text(scope.FindMatcher(selUser).First())
	if name == "" {
		return "", MissingFieldError{Field: "username"}
	}
	return name, nil
}

func extractStoryLink(scope *goquery.Selection) (title string, href string, err error) {
	link := scope.FindMatcher(selStoryLink).First()
	if link.Length() == 0 {
		// pre-2021 markup
		link = scope.FindMatcher(selStoryLinkOld).First()
	}
	if link.Length() == 0 {
		return "", "", MissingFieldError{Field: "title_or_url"}
	}
	href, ok := link.Attr("href")
	if !ok {
		return "", "", MissingFieldError{Field: "title_or_url"}
	}
	title = htmlutil.Text(link)
	if title == "" {
		return "", "", MissingFieldError{Field: "title_or_url"}
	}
	return title, href, nil
}

// extractScore reads the "N points" span. Absence and malformed content are
// distinct failures so callers can default the former and notice the latter.
func extractScore(scope *goquery.Selection) (uint, error) {
	score := scope.FindMatcher(selScore).First()
	if score.Length() == 0 {
		return 0, MissingFieldError{Field: "score"}
	}
	text := htmlutil.Text(score)
	raw, _, _ := strings.Cut(text, " ")
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, ParseFieldError{Field: "score", Raw: text}
	}
	return uint(n), nil
}

// extractCommentCount keeps the last anchor reading "... comments" or
// "discuss"; "discuss" is the site's zero-comment state.
func extractCommentCount(scope *goquery.Selection) (uint, error) {
	var text string
	scope.FindMatcher(selAnchor).Each(func(_ int, a *goquery.Selection) {
		t := htmlutil.Text(a)
		if strings.HasSuffix(t, "comments") || t == "discuss" {
			text = t
		}
	})
	if text == "" {
		return 0, MissingFieldError{Field: "comment_count"}
	}
	if text == "discuss" {
		return 0, nil
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, ParseFieldError{Field: "comment_count", Raw: text}
	}
	return uint(n), nil
}

// extractUpvote finds an upvote link in scope. A "nosee" class means the
// session already voted and the arrow is hidden, so it doesn't count.
// Absence is a valid state, not an error.
func extractUpvote(scope *goquery.Selection) *VoteAction {
	var action *VoteAction
	scope.FindMatcher(selAnchor).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := a.AttrOr("href", "")
		if !strings.Contains(href, "how=up") {
			return true
		}
		if strings.Contains(a.AttrOr("class", ""), "nosee") {
			return true
		}
		action = &VoteAction{Dir: VoteUp, Href: href}
		return false
	})
	return action
}

func extractDownvote(scope *goquery.Selection) *VoteAction {
	var action *VoteAction
	scope.FindMatcher(selAnchor).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := a.AttrOr("href", "")
		if !strings.Contains(href, "how=un") {
			return true
		}
		action = &VoteAction{Dir: VoteDown, Href: href}
		return false
	})
	return action
}

// preferUpvote implements the header-level vote derivation: when both links
// are present the upvote wins, and a lone downvote signals the record is
// already upvoted by this session.
func preferUpvote(up, down *VoteAction) *VoteAction {
	if up != nil {
		return up
	}
	return down
}

func extractAge(scope *goquery.Selection) (string, error) {
	age := htmlutil.Text(scope.FindMatcher(selAge).First())
	if age == "" {
		return "", MissingFieldError{Field: "age"}
	}
	return age, nil
}

// extractDepth derives nesting depth from the indentation spacer's width.
func extractDepth(scope *goquery.Selection) (uint, error) {
	img := scope.FindMatcher(selIndent).First()
	if img.Length() == 0 {
		return 0, MissingFieldError{Field: "depth"}
	}
	width, ok := img.Attr("width")
	if !ok {
		return 0, MissingFieldError{Field: "depth"}
	}
	n, err := strconv.ParseUint(width, 10, 32)
	if err != nil {
		return 0, ParseFieldError{Field: "depth", Raw: width}
	}
	return uint(n) / indentUnit, nil
}

func extractContentHtml(scope *goquery.Selection) (string, error) {
	body := scope.FindMatcher(selCommentBody).First()
	if body.Length() == 0 {
		// folded/flagged comments lose the commtext span
		body = scope.FindMatcher(selCommentCell).First()
	}
	if body.Length() == 0 {
		return "", MissingFieldError{Field: "content"}
	}
	inner, err := body.Html()
	if err != nil {
		return "", MissingFieldError{Field: "content"}
	}
	return inner, nil
}

// assemblePost builds one listing record from a title row and its action
// row. Id, title and url are mandatory; username, score and comment count
// degrade to defaults so a job posting or unscored row still assembles.
func assemblePost(row, actions *goquery.Selection) (Post, error) {
	id, ok := row.Attr("id")
	if !ok {
		return Post{}, MissingFieldError{Field: "id"}
	}
	title, href, err := extractStoryLink(row)
	if err != nil {
		return Post{}, err
	}

	post := Post{
		Id:       id,
		Title:    title,
		Url:      href,
		Username: UnknownUser,
	}
	if name, err := extractUsername(actions); err == nil {
		post.Username = name
	}
	if score, err := extractScore(actions); err == nil {
		post.Score = score
	}
	if count, err := extractCommentCount(actions); err == nil {
		post.CommentCount = count
	}

	// the upvote arrow sits in the title row, the unvote link in the
	// action row
	post.Vote = preferUpvote(extractUpvote(row), extractDownvote(actions))
	return post, nil
}

// assembleComment builds one comment from its table row. Every field is
// mandatory except the vote links: a partially extracted comment would
// corrupt the thread structure, so any failure here aborts the whole
// submission fetch.
func assembleComment(row *goquery.Selection) (Comment, error) {
	id, ok := row.Attr("id")
	if !ok {
		return Comment{}, MissingFieldError{Field: "id"}
	}
	username, err := extractUsername(row)
	if err != nil {
		return Comment{}, err
	}
	depth, err := extractDepth(row)
	if err != nil {
		return Comment{}, err
	}
	age, err := extractAge(row)
	if err != nil {
		return Comment{}, err
	}
	content, err := extractContentHtml(row)
	if err != nil {
		return Comment{}, err
	}

	var up, down *VoteAction
	votes := row.FindMatcher(selVoteLinks).First()
	if votes.Length() > 0 {
		votes.FindMatcher(selAnchor).Each(func(_ int, a *goquery.Selection) {
			href, ok := a.Attr("href")
			if !ok {
				return
			}
			switch {
			case strings.Contains(href, "how=up"):
				up = &VoteAction{Dir: VoteUp, Href: href}
			case strings.Contains(href, "how=un"):
				down = &VoteAction{Dir: VoteDown, Href: href}
			}
		})
	}

	return Comment{
		Id:          id,
		Depth:       depth,
		Age:         age,
		Username:    username,
		ContentHtml: content,
		Upvote:      up,
		Downvote:    down,
	}, nil
}

// parseListing maps a listing document to its posts in document order. A
// single corrupt row aborts the whole fetch: a silently shorter listing is
// harder to notice than an error.
func parseListing(doc *goquery.Document) ([]Post, error) {
	var posts []Post
	var firstErr error
	doc.FindMatcher(selListingRow).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		actions := row.Next()
		if actions.Length() == 0 {
			firstErr = MissingFieldError{Field: "action_row"}
			return false
		}
		post, err := assemblePost(row, actions)
		if err != nil {
			firstErr = err
			return false
		}
		posts = append(posts, post)
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return posts, nil
}

// parseSubmission maps a submission document to its post plus the
// reconstructed comment forest. Unlike listing rows, the header's comment
// count is mandatory here.
func parseSubmission(id string, doc *goquery.Document) (Post, error) {
	header := doc.FindMatcher(selHeader).First()
	if header.Length() == 0 {
		return Post{}, MissingFieldError{Field: "header"}
	}

	title, href, err := extractStoryLink(header)
	if err != nil {
		return Post{}, err
	}
	username, err := extractUsername(header)
	if err != nil {
		return Post{}, err
	}
	score, err := extractScore(header)
	if err != nil {
		return Post{}, err
	}
	count, err := extractCommentCount(header)
	if err != nil {
		return Post{}, err
	}
	vote := preferUpvote(extractUpvote(header), extractDownvote(header))

	var flat []Comment
	var commentErr error
	doc.FindMatcher(selCommentRow).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		comment, err := assembleComment(row)
		if err != nil {
			commentErr = err
			return false
		}
		flat = append(flat, comment)
		return true
	})
	if commentErr != nil {
		return Post{}, commentErr
	}

	comments, err := ReconstructForest(flat, false)
	if err != nil {
		return Post{}, err
	}

	return Post{
		Id:           id,
		Title:        title,
		Url:          href,
		Username:     username,
		Score:        score,
		CommentCount: count,
		Comments:     comments,
		Vote:         vote,
	}, nil
}
