package activity

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(i int, base time.Time) Entry {
	return Entry{
		ID:    fmt.Sprintf("e-%03d", i),
		Type:  TypeList,
		Title: fmt.Sprintf("list %d", i),
		Date:  base.Add(time.Duration(i) * time.Minute),
	}
}

func TestLog_Append(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("NewestFirst", func(t *testing.T) {
		log := NewLog(nil)
		log.Append(entryAt(1, base))
		log.Append(entryAt(2, base))

		entries := log.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "e-002", entries[0].ID)
		assert.Equal(t, "e-001", entries[1].ID)
	})

	t.Run("RetainsOnlyMostRecentHundred", func(t *testing.T) {
		log := NewLog(nil)
		for i := 1; i <= 101; i++ {
			log.Append(entryAt(i, base))
		}

		entries := log.Entries()
		require.Len(t, entries, MaxEntries)
		assert.Equal(t, "e-101", entries[0].ID)
		assert.Equal(t, "e-002", entries[MaxEntries-1].ID)
		for i := 1; i < len(entries); i++ {
			assert.True(t, entries[i-1].Date.After(entries[i].Date), "entries must be reverse-chronological")
		}
	})

	t.Run("NewLogTruncatesOversizedInput", func(t *testing.T) {
		seed := make([]Entry, 0, 120)
		for i := 120; i > 0; i-- {
			seed = append(seed, entryAt(i, base))
		}
		log := NewLog(seed)
		assert.Equal(t, MaxEntries, log.Len())
		assert.Equal(t, "e-120", log.Entries()[0].ID)
	})

	t.Run("EntriesIsACopy", func(t *testing.T) {
		log := NewLog(nil)
		log.Append(entryAt(1, base))
		entries := log.Entries()
		entries[0].Title = "mutated"
		assert.Equal(t, "list 1", log.Entries()[0].Title)
	})
}

func TestLog_Search(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	log := NewLog([]Entry{
		{ID: "3", Type: TypePayment, Title: "دفع جزئي: 17", Meta: "250.00 دولار", Date: at},
		{ID: "2", Type: TypeSupplier, Title: "إضافة مورد: Acme Trading", Meta: "07701234567", Date: at.AddDate(0, -1, 0)},
		{ID: "1", Type: TypeDelete, Title: "حذف قائمة", Meta: "abc", Date: at.AddDate(-1, 0, 0)},
	})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"EmptyQueryReturnsAll", "", []string{"3", "2", "1"}},
		{"TitleCaseInsensitive", "  acme ", []string{"2"}},
		{"Meta", "0770", []string{"2"}},
		{"ArabicTitle", "دفع", []string{"3"}},
		{"IsoDate", "2024-05-01", []string{"3"}},
		{"NoMatch", "nothing", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []string{}
			for _, e := range log.Search(tt.query) {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestNewEntry(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	t.Run("ValidTypes", func(t *testing.T) {
		for _, typ := range Types() {
			e, err := NewEntry("id", typ, "title", "meta", at)
			require.NoError(t, err)
			assert.Equal(t, typ, e.Type)
			assert.NotEqual(t, "📌", typ.Icon())
		}
	})

	t.Run("UnknownTypeRejected", func(t *testing.T) {
		_, err := NewEntry("id", Type("login"), "title", "", at)
		assert.ErrorIs(t, err, ErrUnknownType)
		assert.Equal(t, "📌", Type("login").Icon())
	})
}
