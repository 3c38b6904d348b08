package hackernews

import (
	"strings"
	"testing"

	"hnclient/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func docFromString(t *testing.T, markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestExtractScore(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/hackernews")
	defer cleanup()

	testCases := []struct {
		name     string
		markup   string
		expected uint
		err      error
	}{
		{
			name:     "normal",
			markup:   `<div><span class="score"> 532 points</span></div>`,
			expected: 532,
		},
		{
			name:     "single point",
			markup:   `<div><span class="score">1 point</span></div>`,
			expected: 1,
		},
		{
			name:   "malformed",
			markup: `<div><span class="score">points</span></div>`,
			err:    ParseFieldError{Field: "score", Raw: "points"},
		},
		{
			name:   "absent",
			markup: `<div></div>`,
			err:    MissingFieldError{Field: "score"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := docFromString(t, tc.markup)
			score, err := extractScore(doc.Selection)
			if tc.err != nil {
				require.Equal(t, tc.err, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, score)
		})
	}
}

func TestExtractCommentCount(t *testing.T) {
	testCases := []struct {
		name     string
		markup   string
		expected uint
		err      error
	}{
		{
			name:     "normal",
			markup:   `<div><a href="#">hide</a> <a href="#">42 comments</a></div>`,
			expected: 42,
		},
		{
			name:     "discuss",
			markup:   `<div><a href="#">discuss</a></div>`,
			expected: 0,
		},
		{
			name:     "thousands separator",
			markup:   `<div><a href="#">1,024 comments</a></div>`,
			expected: 1024,
		},
		{
			name:     "last matching anchor wins",
			markup:   `<div><a href="#">3 comments</a> <a href="#">7 comments</a></div>`,
			expected: 7,
		},
		{
			name:   "absent",
			markup: `<div><a href="#">hide</a></div>`,
			err:    MissingFieldError{Field: "comment_count"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := docFromString(t, tc.markup)
			count, err := extractCommentCount(doc.Selection)
			if tc.err != nil {
				require.Equal(t, tc.err, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, count)
		})
	}
}

func TestExtractVotes(t *testing.T) {
	upHref := "vote?id=1&how=up&auth=tok"
	downHref := "vote?id=1&how=un&auth=tok"

	testCases := []struct {
		name     string
		markup   string
		upvote   *VoteAction
		downvote *VoteAction
	}{
		{
			name:   "upvote only",
			markup: `<div><a href="vote?id=1&amp;how=up&amp;auth=tok">up</a></div>`,
			upvote: &VoteAction{Dir: VoteUp, Href: upHref},
		},
		{
			name:     "downvote only",
			markup:   `<div><a href="vote?id=1&amp;how=un&amp;auth=tok">down</a></div>`,
			downvote: &VoteAction{Dir: VoteDown, Href: downHref},
		},
		{
			name: "both",
			markup: `<div>` +
				`<a href="vote?id=1&amp;how=up&amp;auth=tok">up</a>` +
				`<a href="vote?id=1&amp;how=un&amp;auth=tok">down</a>` +
				`</div>`,
			upvote:   &VoteAction{Dir: VoteUp, Href: upHref},
			downvote: &VoteAction{Dir: VoteDown, Href: downHref},
		},
		{
			name:   "neither",
			markup: `<div><a href="item?id=1">42 comments</a></div>`,
		},
		{
			name:   "hidden upvote arrow is skipped",
			markup: `<div><a class="nosee" href="vote?id=1&amp;how=up&amp;auth=tok">up</a></div>`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := docFromString(t, tc.markup)
			up := extractUpvote(doc.Selection)
			down := extractDownvote(doc.Selection)
			require.Equal(t, tc.upvote, up)
			require.Equal(t, tc.downvote, down)

			// header-level derivation: upvote wins when both exist
			expected := tc.upvote
			if expected == nil {
				expected = tc.downvote
			}
			require.Equal(t, expected, preferUpvote(up, down))
		})
	}
}

func TestExtractDepth(t *testing.T) {
	testCases := []struct {
		name     string
		markup   string
		expected uint
		err      error
	}{
		{
			name:     "root",
			markup:   `<div><span class="ind"><img src="s.gif" width="0" height="1"></span></div>`,
			expected: 0,
		},
		{
			name:     "two levels deep",
			markup:   `<div><span class="ind"><img src="s.gif" width="80" height="1"></span></div>`,
			expected: 2,
		},
		{
			name:   "non numeric width",
			markup: `<div><span class="ind"><img src="s.gif" width="abc" height="1"></span></div>`,
			err:    ParseFieldError{Field: "depth", Raw: "abc"},
		},
		{
			name:   "absent",
			markup: `<div></div>`,
			err:    MissingFieldError{Field: "depth"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := docFromString(t, tc.markup)
			depth, err := extractDepth(doc.Selection)
			if tc.err != nil {
				require.Equal(t, tc.err, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, depth)
		})
	}
}

const listingFixture = `<html><body><table>
<tr class="athing" id="101">
  <td class="votelinks"><a href="vote?id=101&amp;how=up&amp;auth=tok"><div class="votearrow"></div></a></td>
  <td class="title"><span class="titleline"><a href="https://example.com/a">Example A</a></span></td>
</tr>
<tr><td class="subtext">
  <span class="score">150 points</span> by <a class="hnuser" href="user?id=alice">alice</a>
  <span class="age"><a href="item?id=101">3 hours ago</a></span> |
  <a href="hide?id=101">hide</a> | <a href="item?id=101">42 comments</a>
</td></tr>
<tr class="spacer"><td></td></tr>
<tr class="athing" id="102">
  <td class="votelinks"></td>
  <td class="title"><span class="titleline"><a href="item?id=102">Example B</a></span></td>
</tr>
<tr><td class="subtext"><a href="item?id=102">discuss</a></td></tr>
</table></body></html>`

func TestParseListing(t *testing.T) {
	doc := docFromString(t, listingFixture)
	posts, err := parseListing(doc)
	require.NoError(t, err)

	expected := []Post{
		{
			Id:           "101",
			Title:        "Example A",
			Url:          "https://example.com/a",
			Username:     "alice",
			Score:        150,
			CommentCount: 42,
			Vote:         &VoteAction{Dir: VoteUp, Href: "vote?id=101&how=up&auth=tok"},
		},
		{
			// self post without score or submitter: non-mandatory fields
			// degrade to defaults instead of failing the row
			Id:           "102",
			Title:        "Example B",
			Url:          "item?id=102",
			Username:     UnknownUser,
			Score:        0,
			CommentCount: 0,
		},
	}
	if diff := cmp.Diff(expected, posts); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseListingIdempotent(t *testing.T) {
	doc := docFromString(t, listingFixture)
	first, err := parseListing(doc)
	require.NoError(t, err)
	second, err := parseListing(doc)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseListingMissingActionRow(t *testing.T) {
	markup := `<html><body><table>
<tr class="athing" id="101">
  <td class="title"><span class="titleline"><a href="https://example.com/a">Example A</a></span></td>
</tr>
</table></body></html>`

	doc := docFromString(t, markup)
	_, err := parseListing(doc)
	var missing MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "action_row", missing.Field)
}

func TestParseListingCorruptRowAbortsFetch(t *testing.T) {
	markup := `<html><body><table>
<tr class="athing" id="101"><td class="title">no link here</td></tr>
<tr><td class="subtext"><span class="score">5 points</span></td></tr>
</table></body></html>`

	doc := docFromString(t, markup)
	_, err := parseListing(doc)
	var missing MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "title_or_url", missing.Field)
}

const submissionFixture = `<html><body>
<table class="fatitem">
<tr class="athing" id="500">
  <td class="votelinks"><a href="vote?id=500&amp;how=up&amp;auth=tok"><div class="votearrow"></div></a></td>
  <td class="title"><span class="titleline"><a href="https://example.com/story">Example</a></span></td>
</tr>
<tr><td class="subtext">
  <span class="score">150 points</span> by <a class="hnuser" href="user?id=carol">carol</a>
  <span class="age"><a href="item?id=500">5 hours ago</a></span> |
  <a href="item?id=500">3 comments</a>
</td></tr>
</table>
<table class="comment-tree">
<tr class="athing comtr" id="601"><td><table><tr>
  <td class="ind"><img src="s.gif" width="0" height="1"></td>
  <td class="votelinks"><a href="vote?id=601&amp;how=up&amp;auth=tok"><div class="votearrow"></div></a></td>
  <td class="default">
    <span class="comhead"><a class="hnuser" href="user?id=dave">dave</a> <span class="age"><a href="item?id=601">2 hours ago</a></span></span>
    <div class="comment"><span class="commtext c00">First reply</span></div>
  </td>
</tr></table></td></tr>
<tr class="athing comtr" id="602"><td><table><tr>
  <td class="ind"><img src="s.gif" width="40" height="1"></td>
  <td class="votelinks">
    <a href="vote?id=602&amp;how=up&amp;auth=tok"><div class="votearrow"></div></a>
    <a href="vote?id=602&amp;how=un&amp;auth=tok">unvote</a>
  </td>
  <td class="default">
    <span class="comhead"><a class="hnuser" href="user?id=erin">erin</a> <span class="age"><a href="item?id=602">1 hour ago</a></span></span>
    <div class="comment"><span class="commtext c00">Nested <i>reply</i></span></div>
  </td>
</tr></table></td></tr>
<tr class="athing comtr" id="603"><td><table><tr>
  <td class="ind"><img src="s.gif" width="0" height="1"></td>
  <td class="votelinks"><a href="vote?id=603&amp;how=un&amp;auth=tok">unvote</a></td>
  <td class="default">
    <span class="comhead"><a class="hnuser" href="user?id=frank">frank</a> <span class="age"><a href="item?id=603">30 minutes ago</a></span></span>
    <div class="comment"><span class="commtext c00">Second root</span></div>
  </td>
</tr></table></td></tr>
</table>
</body></html>`

func TestParseSubmission(t *testing.T) {
	doc := docFromString(t, submissionFixture)
	post, err := parseSubmission("500", doc)
	require.NoError(t, err)

	expected := Post{
		Id:           "500",
		Title:        "Example",
		Url:          "https://example.com/story",
		Username:     "carol",
		Score:        150,
		CommentCount: 3,
		Vote:         &VoteAction{Dir: VoteUp, Href: "vote?id=500&how=up&auth=tok"},
		Comments: []Comment{
			{
				Id:          "601",
				Depth:       0,
				Age:         "2 hours ago",
				Username:    "dave",
				ContentHtml: "First reply",
				Upvote:      &VoteAction{Dir: VoteUp, Href: "vote?id=601&how=up&auth=tok"},
				Children: []Comment{
					{
						Id:          "602",
						Depth:       1,
						Age:         "1 hour ago",
						Username:    "erin",
						ContentHtml: "Nested <i>reply</i>",
						Upvote:      &VoteAction{Dir: VoteUp, Href: "vote?id=602&how=up&auth=tok"},
						Downvote:    &VoteAction{Dir: VoteDown, Href: "vote?id=602&how=un&auth=tok"},
					},
				},
			},
			{
				Id:          "603",
				Depth:       0,
				Age:         "30 minutes ago",
				Username:    "frank",
				ContentHtml: "Second root",
				Downvote:    &VoteAction{Dir: VoteDown, Href: "vote?id=603&how=un&auth=tok"},
			},
		},
	}
	if diff := cmp.Diff(expected, post); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseSubmissionCorruptCommentAbortsFetch(t *testing.T) {
	// second comment is missing its username link
	markup := strings.Replace(
		submissionFixture,
		`<a class="hnuser" href="user?id=erin">erin</a>`,
		"",
		1,
	)
	doc := docFromString(t, markup)
	_, err := parseSubmission("500", doc)
	var missing MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "username", missing.Field)
}

func TestParseSubmissionMissingHeader(t *testing.T) {
	doc := docFromString(t, `<html><body><div>nothing here</div></body></html>`)
	_, err := parseSubmission("500", doc)
	var missing MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "header", missing.Field)
}
