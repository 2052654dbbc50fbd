package optimization

import "strings"

// PreScore estimates an ATS keyword-match score for the unoptimized resume.
// It is a cheap word-overlap heuristic used to show improvement against the
// model's post-optimization score.
func PreScore(resumeText, jobText string) int {
	jobWords := wordSet(jobText)
	if len(jobWords) == 0 {
		return 0
	}
	resumeWords := wordSet(resumeText)

	matches := 0
	for word := range jobWords {
		if _, ok := resumeWords[word]; ok {
			matches++
		}
	}

	score := matches * 100 / len(jobWords)
	if score > 100 {
		score = 100
	}
	return score
}

func wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
