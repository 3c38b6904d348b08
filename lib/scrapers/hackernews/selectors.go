package hackernews

import "github.com/andybalholm/cascadia"

// All selectors are compiled once here. A typo in one of these is a
// programmer error and panics at init, before any request is made.
var (
	selUser         = cascadia.MustCompile(".hnuser")
	selStoryLink    = cascadia.MustCompile(".titleline > a")
	selStoryLinkOld = cascadia.MustCompile("a.storylink")
	selScore        = cascadia.MustCompile(".score")
	selAnchor       = cascadia.MustCompile("a")
	selListingRow   = cascadia.MustCompile("tr.athing")
	selHeader       = cascadia.MustCompile(".fatitem")
	selCommentRow   = cascadia.MustCompile(".comment-tree tr.athing.comtr")
	selIndent       = cascadia.MustCompile(".ind img")
	selAge          = cascadia.MustCompile(".age")
	selCommentBody  = cascadia.MustCompile(".commtext")
	selCommentCell  = cascadia.MustCompile(".comment")
	selVoteLinks    = cascadia.MustCompile(".votelinks")
)
