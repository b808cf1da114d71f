package notify

import (
	"fmt"
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// summaryPolicy keeps only the inline tags Telegram's HTML parse mode
// accepts; anything else in LLM output would make sendMessage reject the
// whole message
var summaryPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "i", "code")
	return p
}()

// Message is one notification ready for delivery
type Message struct {
	Entity  string
	Title   string
	Summary string
	URL     string
}

// Format renders the message body in the fixed notification layout:
// entity banner, title, AI summary, source link
func (m Message) Format() string {
	return fmt.Sprintf("📢 <b>[%s 뉴스]</b>\n📌 %s\n\n🤖 AI 요약:\n%s\n\n🔗 %s",
		html.EscapeString(m.Entity),
		html.EscapeString(m.Title),
		summaryPolicy.Sanitize(m.Summary),
		m.URL,
	)
}
