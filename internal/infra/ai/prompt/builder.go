package prompt

import (
	"fmt"
	"strings"

	"github.com/okandemirel/sales-analyst/internal/domain/sales"
)

// ContextResponseChars is how much of each prior response is carried into the
// next prompt's context block.
const ContextResponseChars = 200

// NoPriorContext is the fixed sentence used when the session has no prior
// analyses yet.
const NoPriorContext = "Önceki analiz sonucu yok."

// System returns the fixed system role text.
func System() string {
	return "Sen yalnızca verilen satış verisine göre analiz yapan bir asistansın."
}

const rules = `Sen bir profesyonel satış analiz asistanısın. Görevin, yalnızca verilen satış verisi tablosuna dayanarak kullanıcının komutunu analiz etmek ve sonuçları net, anlaşılır ve profesyonel bir Türkçe ile sunmak. Aşağıdaki kurallara sıkı sıkıya uy:

### Kurallar:
1. **Veriye Bağlılık**: Analizini yalnızca verilen tablodaki verilere dayandır. Tabloda olmayan hiçbir bilgiyi varsayma veya uydurma.
2. **Analiz Türleri**:
   - Tabloda varsa ` + "`adet`, `urun`, `fiyat`, `tarih`, `temsilci`" + ` gibi sütunlara göre:
     - Toplam satış tutarı, ortalama satış, en çok satan ürünler, satış yoğunluğu gibi temel metrikleri hesapla.
     - Zaman bazlı trendler (gün, hafta, ay, yıl gibi) analiz et (eğer tarih verisi varsa).
     - Ürün veya kategori bazlı karşılaştırmalar yap.
     - Satış performansını etkileyen faktörleri (ör. popüler ürünler, düşük performanslı kategoriler) belirle.
3. **Eksik Veri**: Tabloda eksik veri varsa bunu açıkça belirt, ancak analizini engelleme; mevcut verilerle en iyi sonucu üret.
4. **Çıktı Formatı**:
   - Sonuçları düzenli, yapılandırılmış ve profesyonel bir şekilde sun:
     - **Başlık**: Analizin ana konusunu özetleyen bir başlık.
     - **Özet**: Kullanıcının komutuna yanıt olarak kısa bir özet (2-3 cümle).
     - **Detaylı Bulgular**: Liste veya paragraflarla, hesaplamalar ve bulguları net bir şekilde açıkla.
     - **Öneriler**: Analize dayalı 1-2 uygulanabilir iş önerisi sun.
     - **Görselleştirme Önerisi**: Veriye uygun grafik türleri öner (ör. "Bu veri için bir çubuk grafik uygun olur").
5. **Dil ve Ton**: Profesyonel, sade ve rehber bir dil kullan. Karmaşık terimlerden kaçın, her seviyeden kullanıcının anlayabileceği şekilde yaz.
6. **Hata Kontrolü**: Veride anormallikler (negatif fiyat, mantıksız tarihler vb.) varsa bunları belirt ve analizini buna göre uyar.
7. **Bağlam**: Önceki analiz sonuçlarını dikkate alarak tutarlı bir analiz yap.`

const outputStructure = `### Çıktı Yapısı:
- **Analiz Başlığı**: [Komutun özeti]
- **Özet**: [Komutun neyi istediğini ve ana bulguları özetle]
- **Detaylı Bulgular**:
  - [Madde madde veya paragraflarla analiz sonuçları]
- **İş Önerileri**: [Analize dayalı öneriler]
- **Görselleştirme Önerisi**: [Veriye uygun grafik türü]

Lütfen yukarıdaki kurallara uygun olarak analizini gerçekleştir ve sonuçları belirtilen formatta sun.`

// Build assembles the full user message: fixed rules, the literal user
// request, the table rendered as Markdown, the recent-response context block
// and the output-structure reminder. totalRows is the size of the table
// before any row cap; when rows were dropped the prompt says so.
func Build(table *sales.Table, totalRows int, userPrompt string, recent []string) string {
	var b strings.Builder

	b.WriteString(rules)
	b.WriteString("\n\n### Kullanıcının Komutu:\n")
	b.WriteString(userPrompt)
	b.WriteString("\n\n### Satış Verisi (Markdown formatında):\n")
	b.WriteString(RenderTable(table))
	if totalRows > table.RowCount() {
		fmt.Fprintf(&b, "\n(İlk %d satır gösteriliyor, toplam %d satır.)\n", table.RowCount(), totalRows)
	}
	b.WriteString("\n### Önceki Analiz Bağlamı:\n")
	b.WriteString(ContextBlock(recent))
	b.WriteString("\n\n")
	b.WriteString(outputStructure)

	return b.String()
}

// ContextBlock renders up to five prior responses, each cut to its first
// ContextResponseChars runes, as a numbered list.
func ContextBlock(recent []string) string {
	if len(recent) == 0 {
		return NoPriorContext
	}
	var b strings.Builder
	b.WriteString("### Önceki 5 Analiz Sonucu:\n")
	for i, r := range recent {
		fmt.Fprintf(&b, "%d. %s...\n", i+1, headRunes(r, ContextResponseChars))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderTable serializes the table as a column-aligned Markdown pipe table
// with one header row.
func RenderTable(t *sales.Table) string {
	if t == nil || len(t.Columns) == 0 {
		return ""
	}

	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = len([]rune(c))
	}
	for _, row := range t.Rows {
		for i, v := range row {
			if i >= len(widths) {
				break
			}
			if n := len([]rune(v)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for i := range widths {
			v := ""
			if i < len(cells) {
				v = cells[i]
			}
			b.WriteString(" ")
			b.WriteString(padRunes(v, widths[i]))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(t.Columns)
	b.WriteString("|")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("|")
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(row)
	}

	return strings.TrimRight(b.String(), "\n")
}

func headRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func padRunes(s string, w int) string {
	if n := len([]rune(s)); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
