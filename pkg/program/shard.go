package program

import (
	"github.com/code-payments/code-program-sdk/pkg/solana"
	"github.com/code-payments/code-program-sdk/pkg/svm"
)

// ShardMutContext navigates a low/current/high triplet of writable shard
// accounts. At ring edges the same account can legitimately appear in
// more than one position, so the context dedupes by handle identity:
// each distinct account is validated exactly once and backed by a single
// accessor, and every position indexes into that shared slot. Mutating
// through one position is therefore always visible through every alias
// of the same account.
type ShardMutContext[T Loadable] struct {
	slots [3]*AccountRefMut[T]
	count int
	pos   [3]int
}

// NewShardMut validates the triplet and builds the navigator. Duplicate
// handles are validated once; the first error from any distinct handle is
// returned as-is.
func NewShardMut[T Loadable](f *Framework, low, current, high *svm.AccountInfo) (*ShardMutContext[T], error) {
	var ctx ShardMutContext[T]

	for i, info := range []*svm.AccountInfo{low, current, high} {
		slot := ctx.findSlot(info)
		if slot < 0 {
			ref, err := LoadMut[T](f, info)
			if err != nil {
				return nil, err
			}

			slot = ctx.count
			ctx.slots[slot] = ref
			ctx.count++
		}
		ctx.pos[i] = slot
	}

	return &ctx, nil
}

// TryNewShardMut builds the navigator, converting any validation failure
// into nil.
func TryNewShardMut[T Loadable](f *Framework, low, current, high *svm.AccountInfo) *ShardMutContext[T] {
	ctx, err := NewShardMut[T](f, low, current, high)
	if err != nil {
		return nil
	}
	return ctx
}

func (s *ShardMutContext[T]) findSlot(info *svm.AccountInfo) int {
	for i := 0; i < s.count; i++ {
		if s.slots[i].Info == info {
			return i
		}
	}
	return -1
}

// Low returns the low shard's state for mutation.
func (s *ShardMutContext[T]) Low() *T {
	return s.slots[s.pos[0]].GetMut()
}

// Current returns the current shard's state for mutation.
func (s *ShardMutContext[T]) Current() *T {
	return s.slots[s.pos[1]].GetMut()
}

// High returns the high shard's state for mutation.
func (s *ShardMutContext[T]) High() *T {
	return s.slots[s.pos[2]].GetMut()
}

// LowRef returns the accessor backing the low position.
func (s *ShardMutContext[T]) LowRef() *AccountRefMut[T] {
	return s.slots[s.pos[0]]
}

// CurrentRef returns the accessor backing the current position.
func (s *ShardMutContext[T]) CurrentRef() *AccountRefMut[T] {
	return s.slots[s.pos[1]]
}

// HighRef returns the accessor backing the high position.
func (s *ShardMutContext[T]) HighRef() *AccountRefMut[T] {
	return s.slots[s.pos[2]]
}

// LowKey returns the low shard's address.
func (s *ShardMutContext[T]) LowKey() solana.PublicKey {
	return s.slots[s.pos[0]].Key()
}

// CurrentKey returns the current shard's address.
func (s *ShardMutContext[T]) CurrentKey() solana.PublicKey {
	return s.slots[s.pos[1]].Key()
}

// HighKey returns the high shard's address.
func (s *ShardMutContext[T]) HighKey() solana.PublicKey {
	return s.slots[s.pos[2]].Key()
}

// Distinct returns the deduplicated accessors, in first-seen order. The
// slice length is the number of distinct accounts, between 1 and 3.
func (s *ShardMutContext[T]) Distinct() []*AccountRefMut[T] {
	return s.slots[:s.count]
}

// IsLowAliased reports whether the low position shares its account with
// the current position.
func (s *ShardMutContext[T]) IsLowAliased() bool {
	return s.pos[0] == s.pos[1]
}

// IsHighAliased reports whether the high position shares its account with
// the current position.
func (s *ShardMutContext[T]) IsHighAliased() bool {
	return s.pos[2] == s.pos[1]
}

// ShardContext is the read-only counterpart of ShardMutContext, for
// instructions that consult neighboring shards without modifying them.
type ShardContext[T Loadable] struct {
	slots [3]*AccountRef[T]
	count int
	pos   [3]int
}

// NewShard validates the triplet for read access, deduping by handle
// identity the same way NewShardMut does.
func NewShard[T Loadable](f *Framework, low, current, high *svm.AccountInfo) (*ShardContext[T], error) {
	var ctx ShardContext[T]

	for i, info := range []*svm.AccountInfo{low, current, high} {
		slot := -1
		for j := 0; j < ctx.count; j++ {
			if ctx.slots[j].Info == info {
				slot = j
				break
			}
		}
		if slot < 0 {
			ref, err := Load[T](f, info)
			if err != nil {
				return nil, err
			}

			slot = ctx.count
			ctx.slots[slot] = ref
			ctx.count++
		}
		ctx.pos[i] = slot
	}

	return &ctx, nil
}

// Low returns the low shard's state.
func (s *ShardContext[T]) Low() *T {
	return s.slots[s.pos[0]].Get()
}

// Current returns the current shard's state.
func (s *ShardContext[T]) Current() *T {
	return s.slots[s.pos[1]].Get()
}

// High returns the high shard's state.
func (s *ShardContext[T]) High() *T {
	return s.slots[s.pos[2]].Get()
}

// Distinct returns the deduplicated accessors, in first-seen order.
func (s *ShardContext[T]) Distinct() []*AccountRef[T] {
	return s.slots[:s.count]
}
