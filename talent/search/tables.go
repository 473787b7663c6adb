package search

import "strings"

// skillFamily maps variant spellings onto one canonical skill token.
// Table order is detection order, which fixes the order skills appear
// in extraction results.
type skillFamily struct {
	canonical string
	variants  []string
}

var skillVocabulary = []skillFamily{
	{"react", []string{"react", "reactjs", "react.js"}},
	{"next.js", []string{"next", "nextjs", "next.js"}},
	{"vue.js", []string{"vue", "vuejs", "vue.js"}},
	{"angular", []string{"angular"}},
	{"svelte", []string{"svelte"}},
	{"typescript", []string{"typescript", "ts"}},
	{"javascript", []string{"javascript", "js"}},
	{"node.js", []string{"node", "nodejs", "node.js"}},
	{"express", []string{"express", "expressjs"}},
	{"nestjs", []string{"nestjs", "nest.js"}},
	{"python", []string{"python"}},
	{"django", []string{"django"}},
	{"flask", []string{"flask"}},
	{"fastapi", []string{"fastapi", "fast api"}},
	{"graphql", []string{"graphql", "graph ql"}},
	{"rest", []string{"rest", "restful", "rest api"}},
	{"mongodb", []string{"mongodb", "mongo"}},
	{"postgresql", []string{"postgresql", "postgres", "psql"}},
	{"aws", []string{"aws", "amazon web services"}},
	{"azure", []string{"azure"}},
	{"gcp", []string{"gcp", "google cloud"}},
	{"docker", []string{"docker", "containers"}},
	{"kubernetes", []string{"kubernetes", "k8s"}},
	{"tailwind", []string{"tailwind", "tailwindcss"}},
	{"css", []string{"css", "styling"}},
	{"html", []string{"html"}},
	{"redux", []string{"redux"}},
	{"firebase", []string{"firebase"}},
	{"testing", []string{"test", "testing", "jest", "cypress", "unit test"}},
}

// transferableSkills holds, per required skill, the candidate skills
// accepted as partial-credit substitutes. Broad role terms expand to
// their canonical technology sets.
var transferableSkills = map[string][]string{
	"react":      {"vue.js", "angular", "next.js", "svelte"},
	"vue.js":     {"react", "angular"},
	"angular":    {"react", "vue.js"},
	"next.js":    {"react"},
	"svelte":     {"react", "vue.js"},
	"node.js":    {"express", "nestjs", "fastapi"},
	"express":    {"node.js"},
	"python":     {"django", "fastapi", "flask"},
	"javascript": {"typescript"},
	"typescript": {"javascript"},
	"aws":        {"azure", "gcp"},
	"azure":      {"aws", "gcp"},
	"gcp":        {"aws", "azure"},
	"docker":     {"kubernetes"},
	"kubernetes": {"docker"},
	"cloud":      {"aws", "azure", "gcp", "docker", "kubernetes"},
	"frontend":   {"javascript", "html", "css", "react", "vue.js", "angular"},
	"backend":    {"python", "node.js", "django", "express"},
	"full stack": {"javascript", "react", "node.js"},
}

// roleExpansion infers a default skill set from a generic role phrase
// when the query names no concrete skill. First matching row wins.
type roleExpansion struct {
	variants []string
	skills   []string
}

var roleExpansions = []roleExpansion{
	{[]string{"frontend", "front end", "front-end", "web developer"}, []string{"javascript", "html", "css"}},
	{[]string{"backend", "back end", "back-end"}, []string{"python", "node.js"}},
	{[]string{"full stack", "fullstack", "full-stack"}, []string{"javascript", "react", "node.js"}},
}

// locationGazetteer is matched by plain substring against the lowercased
// query; first entry wins.
var locationGazetteer = []string{
	"lima",
	"arequipa",
	"bogota",
	"medellin",
	"mexico city",
	"guadalajara",
	"buenos aires",
	"santiago",
	"sao paulo",
	"rio de janeiro",
	"madrid",
	"barcelona",
	"lisbon",
	"london",
	"berlin",
	"amsterdam",
	"paris",
	"new york",
	"san francisco",
	"austin",
	"miami",
	"seattle",
	"toronto",
	"vancouver",
}

// rolePhrases are query terms that describe a role rather than a
// technology. A model-extracted skill list containing one of these is
// rejected as malformed.
var rolePhrases = map[string]struct{}{
	"frontend":           {},
	"front end":          {},
	"front-end":          {},
	"backend":            {},
	"back end":           {},
	"back-end":           {},
	"full stack":         {},
	"fullstack":          {},
	"full-stack":         {},
	"developer":          {},
	"engineer":           {},
	"programmer":         {},
	"coder":              {},
	"architect":          {},
	"designer":           {},
	"devops":             {},
	"web developer":      {},
	"software engineer":  {},
	"software developer": {},
}

// IsRolePhrase reports whether the token names a role instead of a
// concrete technology.
func IsRolePhrase(token string) bool {
	_, ok := rolePhrases[strings.ToLower(strings.TrimSpace(token))]
	return ok
}

// containsWord reports whether word occurs in s with non-alphanumeric
// characters (or string edges) on both sides. s and word are expected
// lowercased.
func containsWord(s, word string) bool {
	if word == "" {
		return false
	}
	for start := 0; start <= len(s)-len(word); {
		idx := strings.Index(s[start:], word)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(word)
		beforeOK := idx == 0 || !isWordChar(s[idx-1])
		afterOK := end == len(s) || !isWordChar(s[end])
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
	return false
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func containsAnyWord(s string, words []string) bool {
	for _, w := range words {
		if containsWord(s, w) {
			return true
		}
	}
	return false
}
