package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/karandeol-26/VeriCura/internal/app"
)

// Markdown writes v to w.
func Markdown(w io.Writer, v View) error {
	md := markdown.NewMarkdown(w)
	md.H1("VeriCura credibility report")
	md.PlainText("")

	switch v.Scan.Kind {
	case app.OutcomeReport:
		writeReportMD(md, v)
		writeAnalysisMD(md, v)
	case app.OutcomeNotHealth:
		md.Table(markdown.TableSet{
			Header: []string{"Page", "Status"},
			Rows:   [][]string{{v.URL, "NOT HEALTH CONTENT"}},
		})
		md.PlainText("")
		md.Note(v.Scan.Message)
		md.PlainText("")
		md.PlainText(NotHealthHint)
	default:
		md.Caution(errorMessage(v.Scan.Message, v.Scan.Error))
	}
	return md.Build()
}

func writeReportMD(md *markdown.Markdown, v View) {
	r := v.Report()
	score := strconv.Itoa(r.Score) + "/100"
	if r.AIAdjusted {
		score += " (AI-adjusted)"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Page", "Score", "Status"},
		Rows:   [][]string{{r.URL, score, strings.ToUpper(string(v.Label()))}},
	})
	md.PlainText("")

	md.H2("Why this score")
	md.PlainText("")
	rows := make([][]string, 0, len(v.Scan.Factors))
	for _, f := range v.Scan.Factors {
		mark := "✗"
		if f.Positive {
			mark = "✓"
		}
		rows = append(rows, []string{mark, f.Title, f.Description})
	}
	md.Table(markdown.TableSet{Header: []string{"", "Factor", "Detail"}, Rows: rows})
	md.PlainText("")

	if len(r.AuthorNames) > 0 {
		md.PlainTextf("Authors found on page: %s", strings.Join(r.AuthorNames, ", "))
		md.PlainText("")
	}
}

func writeAnalysisMD(md *markdown.Markdown, v View) {
	a := v.Analysis
	if a == nil {
		return
	}
	md.H2("Deeper AI analysis")
	md.PlainText("")

	switch a.Kind {
	case app.OutcomeNotConfigured:
		md.Warning(a.Message)
		return
	case app.OutcomeAnalysisFailed:
		md.Caution("AI analysis failed: " + a.Error)
		return
	case app.OutcomeNoReport:
		md.Note(a.Message)
		return
	}

	res := a.Result
	md.H3("AI verdict")
	md.PlainText(verdictText(res))
	md.PlainText("")

	if len(res.Claims) > 0 {
		md.H3("Claims")
		rows := make([][]string, 0, len(res.Claims))
		for _, c := range res.Claims {
			rows = append(rows, []string{c.Text, string(c.Assessment), c.Reason})
		}
		md.Table(markdown.TableSet{Header: []string{"Claim", "Assessment", "Reason"}, Rows: rows})
		md.PlainText("")
	}

	if len(res.Authors) > 0 {
		md.H3("Author credibility")
		items := make([]string, 0, len(res.Authors))
		for _, au := range res.Authors {
			item := au.Name + ": " + string(au.Credibility)
			if au.Notes != "" {
				item += " – " + au.Notes
			}
			items = append(items, item)
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	md.H3("Evidence / read more")
	links := make([]string, 0, len(res.EvidenceLinks))
	for _, l := range res.EvidenceLinks {
		links = append(links, markdown.Link(linkTitle(l), l.URL)+" – "+linkWhy(l))
	}
	md.BulletList(links...)
	md.PlainText("")

	md.HorizontalRule()
	md.PlainTextf("*%s*", Disclaimer)
}

func errorMessage(msg, detail string) string {
	if msg == "" {
		msg = "Something went wrong."
	}
	if detail == "" {
		return msg
	}
	return msg + " (" + detail + ")"
}
