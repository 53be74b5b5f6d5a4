// generate_test_data writes markdown notes full of reminder markers in every
// supported language, for trying out `go_dateparse watch` and `go_dateparse tui`.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// utterances per language, written the way people jot reminders down.
var utterances = map[string][]string{
	"en": {
		"tomorrow at 9am stand-up notes",
		"next friday at 3pm review pull request",
		"in 2 hours call the plumber",
		"on march 3rd submit expense report",
		"in a fortnight renew certificate",
		"this evening water the plants",
		"next week sprint planning",
		"saturday morning go for a run",
	},
	"de": {
		"morgen um 10 Uhr Zahnarzt",
		"nächsten Freitag Bericht abgeben",
		"in 3 Tagen Steuererklärung",
		"übermorgen Abend Kino",
	},
	"es": {
		"mañana a las 8 llamar a mamá",
		"el próximo lunes reunión con el cliente",
		"en 2 horas sacar la basura",
	},
	"fr": {
		"demain à 14h rendez-vous chez le médecin",
		"lundi prochain réunion d'équipe",
		"dans 3 jours payer le loyer",
	},
	"it": {
		"domani alle 9 chiamare Marco",
		"tra 2 giorni consegnare il progetto",
	},
	"pt": {
		"amanhã às 10 ligar para o banco",
		"daqui a 3 dias renovar passaporte",
	},
	"nl": {
		"morgen om 9 uur tandarts",
		"over 2 dagen verjaardag van Anna",
	},
	"sv": {
		"imorgon klockan 8 träning",
		"om 3 dagar betala räkningar",
	},
	"da": {
		"i morgen klokken 10 møde",
		"om 2 dage aflever rapport",
	},
}

var tags = []string{"work", "personal", "urgent", "meeting", "followup"}

var fillers = []string{
	"Some notes from today.",
	"- [ ] follow up with the team",
	"Nothing to see here, just prose.",
	"## Ideas",
	"> quoted text without a marker",
}

func main() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home dir: %v\n", err)
		os.Exit(1)
	}

	dir := flag.String("dir", filepath.Join(homeDir, ".go_dateparse", "test"), "directory to write the notes to")
	files := flag.Int("files", 5, "number of markdown files")
	perFile := flag.Int("reminders", 20, "reminders per file")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating test dir: %v\n", err)
		os.Exit(1)
	}

	langs := make([]string, 0, len(utterances))
	for lang := range utterances {
		langs = append(langs, lang)
	}

	total := 0
	for i := 0; i < *files; i++ {
		var b strings.Builder
		fmt.Fprintf(&b, "# Notes %d\n\n", i+1)
		for j := 0; j < *perFile; j++ {
			if rand.Intn(3) == 0 {
				b.WriteString(fillers[rand.Intn(len(fillers))] + "\n")
			}
			b.WriteString(marker(langs[rand.Intn(len(langs))]) + "\n")
			total++
		}

		path := filepath.Join(*dir, fmt.Sprintf("notes_%02d.md", i+1))
		if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Generated %d test reminders in %d files at %s\n", total, *files, *dir)
}

// marker renders one [remind_me:lang ...] line with 0-2 random tags. English
// markers leave the language out.
func marker(lang string) string {
	texts := utterances[lang]
	text := texts[rand.Intn(len(texts))]

	perm := rand.Perm(len(tags))
	for _, k := range perm[:rand.Intn(3)] {
		text += " #" + tags[k]
	}

	if lang == "en" {
		return "- [remind_me " + text + "]"
	}
	return "- [remind_me:" + lang + " " + text + "]"
}
