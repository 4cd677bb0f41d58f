//
// Copyright (c) 2023-2026 Markku Rossi
//
// All rights reserved.
//

package aby

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/markkurossi/abyc/compiler/assign"
	"github.com/markkurossi/abyc/compiler/ir"
)

// ShareMap maps terms to their share vectors. Shares are allocated
// from a monotonically increasing counter and never reused.
type ShareMap struct {
	buckets   [10240]*shareAlloc
	nextShare int
	count     int
}

type shareAlloc struct {
	next   *shareAlloc
	key    *ir.Term
	shares []int
}

// NewShareMap creates a new share map.
func NewShareMap() *ShareMap {
	return new(ShareMap)
}

func (m *ShareMap) hash(t *ir.Term) int {
	return int(t.ID) % len(m.buckets)
}

func (m *ShareMap) lookup(t *ir.Term) *shareAlloc {
	for a := m.buckets[m.hash(t)]; a != nil; a = a.next {
		if a.key == t {
			return a
		}
	}
	return nil
}

// Has tests if the term has shares.
func (m *ShareMap) Has(t *ir.Term) bool {
	return m.lookup(t) != nil
}

// Get returns the term's shares.
func (m *ShareMap) Get(t *ir.Term) ([]int, bool) {
	alloc := m.lookup(t)
	if alloc == nil {
		return nil, false
	}
	return alloc.shares, true
}

// Set binds the shares for the term. The term must not have shares.
func (m *ShareMap) Set(t *ir.Term, shares []int) {
	if m.lookup(t) != nil {
		panic(fmt.Sprintf("shares already set for t%d", t.ID))
	}
	hash := m.hash(t)
	m.buckets[hash] = &shareAlloc{
		next:   m.buckets[hash],
		key:    t,
		shares: shares,
	}
	m.count++
}

// Rebind replaces the shares of the term. The term must have shares.
func (m *ShareMap) Rebind(t *ir.Term, shares []int) {
	alloc := m.lookup(t)
	if alloc == nil {
		panic(fmt.Sprintf("no shares for t%d", t.ID))
	}
	alloc.shares = shares
}

// Alloc allocates n consecutive new shares for the term.
func (m *ShareMap) Alloc(t *ir.Term, n int) []int {
	shares := make([]int, n)
	for i := 0; i < n; i++ {
		shares[i] = m.nextShare + i
	}
	m.nextShare += n
	m.Set(t, shares)
	return shares
}

// NextShare returns the next unallocated share.
func (m *ShareMap) NextShare() int {
	return m.nextShare
}

// Len returns the number of terms with shares.
func (m *ShareMap) Len() int {
	return m.count
}

// scheme returns the term's sharing scheme in the current
// computation.
func (l *Lowerer) scheme(t *ir.Term) (assign.Scheme, error) {
	s, ok := l.smap.Get(t)
	if !ok {
		return 0, fmt.Errorf("%w: %s: t%d %s", ErrSharingMissing,
			l.comp.Name, t.ID, t)
	}
	return s, nil
}

func (l *Lowerer) writeShares(shares []int, scheme assign.Scheme) {
	for _, s := range shares {
		l.out.shares = append(l.out.shares,
			fmt.Sprintf("%d %c\n", s, scheme.Char()))
	}
}

// Share returns the term's single share, allocating it if the term
// does not have shares yet.
func (l *Lowerer) Share(t *ir.Term) (int, error) {
	shares, ok := l.shares.Get(t)
	if ok {
		if len(shares) != 1 {
			return 0, fmt.Errorf("%w: t%d %s has %d shares, expected 1",
				ErrSortMismatch, t.ID, t, len(shares))
		}
		return shares[0], nil
	}
	scheme, err := l.scheme(t)
	if err != nil {
		return 0, err
	}
	shares = l.shares.Alloc(t, 1)
	l.writeShares(shares, scheme)

	return shares[0], nil
}

// Shares returns the term's share vector, allocating it if the term
// does not have shares yet. The returned slice is a copy.
func (l *Lowerer) Shares(t *ir.Term) ([]int, error) {
	shares, ok := l.shares.Get(t)
	if ok {
		return append([]int(nil), shares...), nil
	}
	n, err := SortLen(t.Sort())
	if err != nil {
		return nil, fmt.Errorf("t%d %s: %w", t.ID, t, err)
	}
	scheme, err := l.scheme(t)
	if err != nil {
		return nil, err
	}
	shares = l.shares.Alloc(t, n)
	l.writeShares(shares, scheme)

	return append([]int(nil), shares...), nil
}

// constShare returns the share of a constant term. New constants take
// the argument scheme unless the sharing map assigns one.
func (l *Lowerer) constShare(t *ir.Term, scheme assign.Scheme) (
	int, bool, error) {

	if l.shares.Has(t) {
		s, err := l.Share(t)
		return s, false, err
	}
	if s, ok := l.smap.Get(t); ok {
		scheme = s
	}
	shares := l.shares.Alloc(t, 1)
	l.writeShares(shares, scheme)

	return shares[0], true, nil
}

func sharesString(shares []int) string {
	var sb strings.Builder
	for idx, s := range shares {
		if idx > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(strconv.Itoa(s))
	}
	return sb.String()
}
