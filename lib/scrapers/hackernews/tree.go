package hackernews

// ReconstructForest nests a flat, document-ordered comment sequence into a
// forest using each comment's Depth. Every comment becomes a child of the
// nearest preceding comment whose depth is smaller; depth-0 comments become
// roots. Sibling order follows document order and a pre-order walk of the
// result reproduces the input. Runs in O(n).
//
// In tolerant mode (strict=false, what Submission uses) irregular depth
// sequences still produce a forest: a comment deeper than parent depth+1,
// or a first comment with non-zero depth, attaches to the nearest shallower
// predecessor or becomes a root as-is. In strict mode those cases return
// ErrStructuralInconsistency instead.
func ReconstructForest(flat []Comment, strict bool) ([]Comment, error) {
	var roots []Comment
	// path of comments under construction, ordered root to current; a
	// comment collects its children as it is popped past
	var stack []Comment

	settle := func(depth uint) {
		for len(stack) > 0 && stack[len(stack)-1].Depth >= depth {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				roots = append(roots, top)
				continue
			}
			parent := &stack[len(stack)-1]
			parent.Children = append(parent.Children, top)
		}
	}

	for _, comment := range flat {
		settle(comment.Depth)
		if strict {
			if len(stack) == 0 && comment.Depth != 0 {
				return nil, ErrStructuralInconsistency
			}
			if len(stack) > 0 && comment.Depth != stack[len(stack)-1].Depth+1 {
				return nil, ErrStructuralInconsistency
			}
		}
		stack = append(stack, comment)
	}
	settle(0)

	return roots, nil
}
