// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package seqnode is the rope's node model: the eight leaf variants, the
// three derived variants, and the refcount/referencer lifecycle that
// decides when a leaf's storage can be released versus when its
// dependents must be forced to materialize first.
//
// Every exported type here is an implementation detail of the façade in
// the root gorope package; nothing in this package is meant to be used
// directly by library callers.
package seqnode

import (
	"errors"
	"io"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/moneytech/gorope/codec"
)

// Errors a Sequence operation can return. These mirror spec.md's Error
// taxonomy one-for-one; callers distinguish them with errors.Is.
var (
	// ErrRangeError signals an index or interval outside the sequence's
	// current length. It is the same value codec returns, so errors
	// passed through from a leaf's codec calls match it too.
	ErrRangeError = codec.ErrRangeError
	// ErrInvalidByteSequence signals a malformed UTF-8 lead byte. It is
	// the same value codec returns.
	ErrInvalidByteSequence = codec.ErrInvalidByteSequence
	// ErrUnimplemented signals a path the node does not support (e.g. a
	// leaf whose encoding is none of the four known ones).
	ErrUnimplemented = errors.New("seqnode: not implemented for this node state")
)

// Sequence is the shared contract every leaf and derived node satisfies.
type Sequence interface {
	Length() int
	CodeUnitAt(index int) (int32, error)
	Substring(start, end int) (Sequence, error)
	Print(w io.Writer) error
	PrintRange(w io.Writer, start, end int) error
	Trim() Sequence
	TrimLeft() Sequence
	TrimRight() Sequence

	// KeepingCost is the number of bytes this node and its current
	// transitive dependencies would continue to occupy if kept as-is.
	KeepingCost() int
	// FreeingCost is the sum of ReconstructionCost across this node's
	// current back-referents: what destroying it would cost them.
	FreeingCost() int

	RefAdd()
	RefRelease() int
	RefCount() int

	AddReferencer(r Referencer)
	RemoveReferencer(r Referencer)
	// ReconstructReferencers forces every live back-referent from its
	// lazy state into its materialized (contented) state. Called as the
	// last step before a node's storage is released.
	ReconstructReferencers()

	// Hash is a cheap content fingerprint used to fast-reject equality
	// checks before a full code-point comparison; it can prove two
	// sequences differ but never that they're equal (hash collisions).
	Hash() uint64
	// DebugID names this node stably across its lifetime, for tests and
	// the graphdump package; it carries no semantic weight.
	DebugID() uuid.UUID
}

// Referencer is a Sequence that can also appear as a back-referent on
// another node: a derived node in its lazy (state A) form, which must be
// forced to materialize if the parent it points to is about to be freed.
type Referencer interface {
	Sequence
	// ReconstructionCost is the bytes this node would occupy if forced
	// to materialize into an owned buffer right now.
	ReconstructionCost() int
	// Reconstruct transitions this node from its lazy state to its
	// contented (owned-buffer) state, in response to parent being
	// destroyed. The node reads its contents through its own parent
	// fields and rematerializes its full logical contents whichever of
	// its parent edges triggered the call; parent is not otherwise used.
	Reconstruct(parent Sequence)
}

// base holds the bookkeeping shared by every node variant: the wrapper
// reference count and the back-reference list. Leaf and derived node
// types embed it and call its methods directly to satisfy most of
// Sequence's lifecycle surface.
type base struct {
	refCount    int
	referencers []Referencer
	id          uuid.UUID
}

func newBase() base {
	return base{id: uuid.New()}
}

func (b *base) RefAdd() { b.refCount++ }

func (b *base) RefRelease() int {
	if b.refCount == 0 {
		return 0
	}
	b.refCount--
	return b.refCount
}

func (b *base) RefCount() int { return b.refCount }

func (b *base) AddReferencer(r Referencer) {
	b.referencers = append(b.referencers, r)
}

func (b *base) RemoveReferencer(r Referencer) {
	if i := slices.Index(b.referencers, r); i >= 0 {
		b.referencers = slices.Delete(b.referencers, i, i+1)
	}
}

func (b *base) FreeingCost() int {
	cost := 0
	for _, r := range b.referencers {
		cost += r.ReconstructionCost()
	}
	return cost
}

// reconstructReferencers forces every back-referent to materialize,
// passing self so Reconstruct can read self's (about-to-vanish) contents
// one last time.
func (b *base) reconstructReferencers(self Sequence) {
	// Reconstruct removes r from b.referencers, so walk a snapshot.
	for _, r := range append([]Referencer(nil), b.referencers...) {
		r.Reconstruct(self)
	}
}

func (b *base) DebugID() uuid.UUID { return b.id }

// ShouldFree reports whether a node with zero wrapper references should
// actually be released: its back-referents' total reconstruction cost
// must be cheaper than what keeping the node alive costs. This is the
// one gate every destruction site in the lifecycle consults.
func ShouldFree(n Sequence) bool {
	return n.RefCount() == 0 && n.FreeingCost() < n.KeepingCost()
}
