package intent

import (
	"log/slog"
	"math"
	"regexp"
	"strings"
)

// Classifier maps free text to a financial intent plus extracted entities.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	examples []trainedExample
	idf      map[string]float64
	docCount int
	logger   *slog.Logger
}

type trainedExample struct {
	intent Intent
	phrase string
	vector map[string]float64
}

// NewClassifier fits the TF-IDF vocabulary over the training corpus.
func NewClassifier(logger *slog.Logger) *Classifier {
	c := &Classifier{
		idf:    make(map[string]float64),
		logger: logger.With("component", "intent.classifier"),
	}
	c.fit()
	return c
}

// Classify runs preprocessing, intent recognition and entity extraction.
// It never fails: degenerate input yields the general intent at the
// minimum confidence with no entities.
func (c *Classifier) Classify(text string) Result {
	processed := preprocess(text)
	if processed == "" {
		return Result{
			Intent:        IntentGeneral,
			Confidence:    confidenceThreshold,
			ProcessedText: processed,
			OriginalText:  text,
		}
	}

	detected, confidence := c.recognize(processed)

	return Result{
		Intent:        detected,
		Confidence:    confidence,
		Entities:      extractEntities(processed),
		ProcessedText: processed,
		OriginalText:  text,
	}
}

// Suggestions returns the top-k intents ranked by best example similarity.
func (c *Classifier) Suggestions(text string, topK int) []Suggestion {
	processed := preprocess(text)
	input := c.vectorize(processed)

	best := make(map[Intent]float64)
	for _, ex := range c.examples {
		score := cosine(input, ex.vector)
		if score > best[ex.intent] {
			best[ex.intent] = score
		}
	}

	out := make([]Suggestion, 0, len(best))
	for in, score := range best {
		out = append(out, Suggestion{Intent: in, Score: score})
	}
	sortSuggestions(out)
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}

// Suggestion is a ranked candidate intent.
type Suggestion struct {
	Intent Intent  `json:"intent"`
	Score  float64 `json:"score"`
}

func sortSuggestions(items []Suggestion) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].Score > items[j-1].Score; j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	tokenRe      = regexp.MustCompile(`[a-z0-9]{2,}`)
)

var contractions = [][2]string{
	{"i'm", "i am"},
	{"can't", "cannot"},
	{"won't", "will not"},
	{"don't", "do not"},
}

func preprocess(text string) string {
	processed := strings.ToLower(strings.TrimSpace(text))
	processed = whitespaceRe.ReplaceAllString(processed, " ")
	for _, pair := range contractions {
		processed = strings.ReplaceAll(processed, pair[0], pair[1])
	}
	return processed
}

func tokenize(text string) []string {
	return tokenRe.FindAllString(text, -1)
}

// fit computes smoothed inverse document frequencies over the corpus and
// caches an L2-normalized TF-IDF vector per example phrase.
func (c *Classifier) fit() {
	type doc struct {
		intent Intent
		phrase string
		counts map[string]float64
	}

	var docs []doc
	df := make(map[string]int)
	for _, group := range trainingCorpus {
		for _, phrase := range group.phrases {
			counts := make(map[string]float64)
			for _, tok := range tokenize(strings.ToLower(phrase)) {
				counts[tok]++
			}
			for tok := range counts {
				df[tok]++
			}
			docs = append(docs, doc{intent: group.intent, phrase: phrase, counts: counts})
		}
	}

	c.docCount = len(docs)
	for tok, freq := range df {
		c.idf[tok] = math.Log(float64(1+c.docCount)/float64(1+freq)) + 1
	}

	c.examples = make([]trainedExample, 0, len(docs))
	for _, d := range docs {
		vector := make(map[string]float64, len(d.counts))
		for tok, count := range d.counts {
			vector[tok] = count * c.idf[tok]
		}
		normalize(vector)
		c.examples = append(c.examples, trainedExample{intent: d.intent, phrase: d.phrase, vector: vector})
	}
}

func (c *Classifier) vectorize(text string) map[string]float64 {
	vector := make(map[string]float64)
	for _, tok := range tokenize(text) {
		if _, known := c.idf[tok]; known {
			vector[tok]++
		}
	}
	for tok := range vector {
		vector[tok] *= c.idf[tok]
	}
	normalize(vector)
	return vector
}

func (c *Classifier) recognize(processed string) (Intent, float64) {
	input := c.vectorize(processed)
	if len(input) > 0 {
		bestScore := 0.0
		bestIntent := IntentGeneral
		for _, ex := range c.examples {
			if score := cosine(input, ex.vector); score > bestScore {
				bestScore = score
				bestIntent = ex.intent
			}
		}
		if bestScore > confidenceThreshold {
			return bestIntent, bestScore
		}
	}
	return c.keywordFallback(processed)
}

// keywordFallback scores each intent by exact phrase containment plus a
// half-weighted fraction of partially matched phrase words.
func (c *Classifier) keywordFallback(processed string) (Intent, float64) {
	inputWords := make(map[string]struct{})
	for _, w := range strings.Fields(processed) {
		inputWords[w] = struct{}{}
	}

	bestScore := 0.0
	bestIntent := IntentGeneral
	for _, group := range trainingCorpus {
		score := 0.0
		for _, phrase := range group.phrases {
			lowered := strings.ToLower(phrase)
			if strings.Contains(processed, lowered) {
				score++
				continue
			}
			words := strings.Fields(lowered)
			matches := 0
			for _, w := range words {
				if _, ok := inputWords[w]; ok {
					matches++
				}
			}
			if matches > 0 {
				score += float64(matches) / float64(len(words)) * 0.5
			}
		}
		if score > bestScore {
			bestScore = score
			bestIntent = group.intent
		}
	}

	if bestScore > 0 {
		return bestIntent, math.Min(bestScore/3.0, 1.0)
	}
	return IntentGeneral, confidenceThreshold
}

func normalize(vector map[string]float64) {
	var sum float64
	for _, v := range vector {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for tok := range vector {
		vector[tok] /= norm
	}
}

func cosine(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for tok, av := range a {
		if bv, ok := b[tok]; ok {
			dot += av * bv
		}
	}
	return dot
}
