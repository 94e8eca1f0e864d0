package docnum

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posledger/internal/core/types"
	"posledger/internal/domain/documents"
	"posledger/internal/infrastructure/storage/memory"
)

// scriptedSource replays a fixed list of draws, then repeats the last one.
type scriptedSource struct {
	draws []int
	i     int
	now   time.Time
}

func (s *scriptedSource) IntN(n int) int {
	v := s.draws[s.i]
	if s.i < len(s.draws)-1 {
		s.i++
	}
	return v % n
}

func (s *scriptedSource) Now() time.Time { return s.now }

func TestGenerate_Format(t *testing.T) {
	src := &scriptedSource{draws: []int{0}}
	number := Generate("PRC", nil, src)
	assert.Equal(t, "PRC-10001", number)
}

func TestGenerate_RetriesOnCollision(t *testing.T) {
	taken := map[string]struct{}{"10001": {}}
	src := &scriptedSource{draws: []int{0, 0, 1}}

	number := Generate("SV", taken, src)
	assert.Equal(t, "SV-10002", number)
}

func TestGenerate_FallbackAfterExhaustion(t *testing.T) {
	// Every draw collides; after the retry budget the suffix comes from the
	// timestamp instead.
	taken := map[string]struct{}{"10001": {}}
	src := &scriptedSource{
		draws: []int{0},
		now:   time.UnixMilli(1700000054321),
	}

	number := Generate("PRC", taken, src)
	assert.Equal(t, "PRC-54321", number)
}

func TestGenerate_FallbackShiftsIntoRange(t *testing.T) {
	taken := map[string]struct{}{"10001": {}}
	src := &scriptedSource{
		draws: []int{0},
		now:   time.UnixMilli(1700000000345), // last five digits 00345
	}

	number := Generate("PRC", taken, src)
	assert.Equal(t, "PRC-10346", number) // 345 + 10001
}

func TestGenerate_FallbackIsNotRechecked(t *testing.T) {
	// The timestamp fallback is returned even when it collides; the loop
	// terminating wins over uniqueness in a nearly full namespace.
	taken := map[string]struct{}{
		"10001": {},
		"54321": {},
	}
	src := &scriptedSource{
		draws: []int{0},
		now:   time.UnixMilli(1700000054321),
	}

	number := Generate("PRC", taken, src)
	assert.Equal(t, "PRC-54321", number)
}

func TestGenerate_ManyDistinct(t *testing.T) {
	src := NewSeededSource(42, time.UnixMilli(1700000000000))
	taken := make(map[string]struct{})
	seen := make(map[string]struct{})
	format := regexp.MustCompile(`^SV-\d{5}$`)

	for i := 0; i < 500; i++ {
		number := Generate("SV", taken, src)
		require.Regexp(t, format, number)

		_, dup := seen[number]
		require.False(t, dup, "duplicate number %s at iteration %d", number, i)
		seen[number] = struct{}{}
		taken[number[len("SV-"):]] = struct{}{}
	}
}

func TestTakenSuffixes(t *testing.T) {
	numbers := []string{
		"PRC-10001",
		"PRC-10002",
		"PRC-123",      // short digit run still matches
		"SV-10003",     // wrong prefix
		"PRC-abc",      // not digits
		"XPRC-10004",   // anchored at start
		"PRC-10005-x",  // anchored at end
		"",
	}

	taken := TakenSuffixes("PRC", numbers)
	assert.Equal(t, map[string]struct{}{
		"10001": {},
		"10002": {},
		"123":   {},
	}, taken)
}

func TestTakenSuffixes_ComparesAsStrings(t *testing.T) {
	taken := TakenSuffixes("PRC", []string{"PRC-123"})

	// "123" is taken but "00123" is not; generated suffixes are always five
	// digits, so legacy short numbers never collide with them.
	_, has := taken["123"]
	assert.True(t, has)
	_, has = taken["00123"]
	assert.False(t, has)
}

func TestService_NextSkipsExistingNumbers(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	existing := documents.NewTransaction("X", types.Today())
	existing.Number = "PRC-10001"
	existing.Items = []documents.Line{{ItemID: "i", Quantity: 1}}
	require.NoError(t, store.Save(ctx, documents.KindPurchase, existing))

	svc := NewService(store, &scriptedSource{draws: []int{0, 0, 1}})

	number, err := svc.Next(ctx, documents.KindPurchase)
	require.NoError(t, err)
	assert.Equal(t, "PRC-10002", number)
}

func TestService_NamespacesAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	sale := documents.NewTransaction("X", types.Today())
	sale.Number = "SV-10001"
	sale.Items = []documents.Line{{ItemID: "i", Quantity: 1}}
	require.NoError(t, store.Save(ctx, documents.KindSale, sale))

	// A sale holding 10001 does not block the purchase namespace.
	svc := NewService(store, &scriptedSource{draws: []int{0}})
	number, err := svc.Next(ctx, documents.KindPurchase)
	require.NoError(t, err)
	assert.Equal(t, "PRC-10001", number)
}

func TestService_ReadsCollectionFreshEachCall(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewService(store, &scriptedSource{draws: []int{0, 0, 1}})

	first, err := svc.Next(ctx, documents.KindSale)
	require.NoError(t, err)
	assert.Equal(t, "SV-10001", first)

	doc := documents.NewTransaction("X", types.Today())
	doc.Number = first
	doc.Items = []documents.Line{{ItemID: "i", Quantity: 1}}
	require.NoError(t, store.Save(ctx, documents.KindSale, doc))

	// The save above is visible to the next call, so the same draw is
	// rejected and the generator moves on.
	second, err := svc.Next(ctx, documents.KindSale)
	require.NoError(t, err)
	assert.Equal(t, "SV-10002", second)
}

func TestMockGenerator_Default(t *testing.T) {
	m := &MockGenerator{}
	number, err := m.Next(context.Background(), documents.KindSale)
	require.NoError(t, err)
	assert.Equal(t, "SV-10001", number)
}
