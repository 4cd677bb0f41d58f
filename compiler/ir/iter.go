//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ir

import (
	"iter"
)

// PostOrder returns an iterator over all terms reachable from root.
// Each term is yielded exactly once and after all of its arguments.
func PostOrder(root *Term) iter.Seq[*Term] {
	return func(yield func(*Term) bool) {
		type frame struct {
			t    *Term
			next int
		}
		seen := map[*Term]bool{
			root: true,
		}
		stack := []frame{{t: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.t.Args) {
				arg := top.t.Args[top.next]
				top.next++
				if !seen[arg] {
					seen[arg] = true
					stack = append(stack, frame{t: arg})
				}
				continue
			}
			t := top.t
			stack = stack[:len(stack)-1]
			if !yield(t) {
				return
			}
		}
	}
}

// Count returns the number of unique terms reachable from the roots.
func Count(roots ...*Term) int {
	seen := make(map[*Term]bool)
	for _, root := range roots {
		for t := range PostOrder(root) {
			seen[t] = true
		}
	}
	return len(seen)
}
