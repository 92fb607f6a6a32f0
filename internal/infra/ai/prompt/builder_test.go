package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okandemirel/sales-analyst/internal/domain/sales"
)

func sampleTable() *sales.Table {
	return &sales.Table{
		Columns: []string{"urun", "adet", "fiyat"},
		Rows: [][]string{
			{"Klavye", "12", "450"},
			{"Mouse", "30", "250"},
			{"Monitör", "5", "4200"},
		},
	}
}

func TestBuildContainsRequestAndTable(t *testing.T) {
	table := sampleTable()
	got := Build(table, table.RowCount(), "toplam satışı hesapla", nil)

	assert.Contains(t, got, "toplam satışı hesapla")
	assert.Contains(t, got, "### Satış Verisi (Markdown formatında):")
	for _, cell := range []string{"urun", "Klavye", "Mouse", "Monitör", "4200"} {
		assert.Contains(t, got, cell)
	}
	// full table passed through, no truncation notice
	assert.NotContains(t, got, "satır gösteriliyor")
}

func TestBuildFixedSections(t *testing.T) {
	table := sampleTable()
	got := Build(table, table.RowCount(), "özet çıkar", nil)

	for _, section := range []string{
		"### Kurallar:",
		"### Kullanıcının Komutu:",
		"### Önceki Analiz Bağlamı:",
		"### Çıktı Yapısı:",
		"**Görselleştirme Önerisi**",
	} {
		assert.Contains(t, got, section)
	}
}

func TestBuildTruncationNotice(t *testing.T) {
	table := sampleTable()
	capped := table.Head(2)
	got := Build(capped, table.RowCount(), "analiz et", nil)

	assert.Contains(t, got, "(İlk 2 satır gösteriliyor, toplam 3 satır.)")
	assert.NotContains(t, got, "Monitör")
}

func TestContextBlockEmpty(t *testing.T) {
	assert.Equal(t, NoPriorContext, ContextBlock(nil))
}

func TestContextBlockTruncatesLongResponses(t *testing.T) {
	long := strings.Repeat("a", 350)
	got := ContextBlock([]string{long, "kısa sonuç"})

	require.Contains(t, got, "### Önceki 5 Analiz Sonucu:")
	assert.Contains(t, got, "1. "+strings.Repeat("a", 200)+"...")
	assert.NotContains(t, got, strings.Repeat("a", 201))
	assert.Contains(t, got, "2. kısa sonuç...")
}

func TestRenderTableAlignment(t *testing.T) {
	got := RenderTable(sampleTable())
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 5)

	// header, separator, 3 data rows, all pipe-delimited
	assert.Equal(t, "| urun    | adet | fiyat |", lines[0])
	assert.Equal(t, "|---------|------|-------|", lines[1])
	assert.Equal(t, "| Klavye  | 12   | 450   |", lines[2])
	assert.Equal(t, "| Monitör | 5    | 4200  |", lines[4])
}

func TestRenderTableEmpty(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil))
	assert.Equal(t, "", RenderTable(&sales.Table{}))
}
