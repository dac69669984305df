package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/dictstat/internal/lexicon"
	"github.com/verte-zerg/dictstat/internal/model"
	"github.com/verte-zerg/dictstat/internal/tokenize"
)

const (
	typingWPM        = 40.0
	minPhraseCount   = 2
	minRareCount     = 2
	minTopWordCount  = 2
	uniqueWordMinLen = 3
	vocabWordMinLen  = 4
)

// Aggregator turns session records into a Snapshot. It holds no mutable
// state, so one Aggregator may be shared between goroutines.
type Aggregator struct {
	lex *lexicon.Lexicon
}

// NewAggregator returns an Aggregator backed by lex, or by the default
// lexicon when lex is nil.
func NewAggregator(lex *lexicon.Lexicon) *Aggregator {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Aggregator{lex: lex}
}

// Aggregate computes a snapshot with the default lexicon.
func Aggregate(records []model.SessionRecord, now time.Time) Snapshot {
	return NewAggregator(nil).Aggregate(records, now)
}

// DayKey returns the canonical YYYY-MM-DD key of t in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayLayout)
}

// StartOfWeek returns local Sunday 00:00 of the week containing now.
func StartOfWeek(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, now.Location())
}

type dayAcc struct {
	words    int
	duration float64
	sessions int
	wpmSum   float64
	wpmCount int
}

type meanAcc struct {
	sum   float64
	count int
}

func (m meanAcc) rounded() *float64 {
	if m.count == 0 {
		return nil
	}
	return model.Float(math.Round(m.sum / float64(m.count)))
}

type sentimentAcc struct {
	scoreSum float64
	sessions int
	positive int
	negative int
}

type readingAcc struct {
	words     int
	sentences int
	syllables int
}

// Aggregate computes every metric of the snapshot from records. All day
// keys, weekdays and hours are taken in now's location.
func (a *Aggregator) Aggregate(records []model.SessionRecord, now time.Time) Snapshot {
	loc := now.Location()
	snap := a.emptySnapshot()

	weekStart := StartOfWeek(now)
	lastWeekStart := weekStart.AddDate(0, 0, -7)

	days := map[string]*dayAcc{}
	sentiment := map[string]*sentimentAcc{}
	var hourly [24]meanAcc
	var reading readingAcc

	freq := newCounter()
	bigrams := newCounter()
	trigrams := newCounter()
	uniqueWords := map[string]struct{}{}
	beforeWeek := map[string]struct{}{}
	thisWeek := newCounter()

	tokensByRecord := make([][]string, len(records))

	for i, rec := range records {
		ts := rec.Timestamp.In(loc)
		key := ts.Format(dayLayout)
		words := nonNegativeInt(rec.WordCount)
		duration := finiteNonNegative(rec.DurationSeconds)

		snap.Sessions++
		snap.ActivityMatrix[ts.Weekday()][ts.Hour()]++

		day, ok := days[key]
		if !ok {
			day = &dayAcc{}
			days[key] = day
		}
		day.words += words
		day.duration += duration
		day.sessions++

		if wpm, ok := wpmSample(rec); ok {
			hourly[ts.Hour()].sum += wpm
			hourly[ts.Hour()].count++
			day.wpmSum += wpm
			day.wpmCount++
			snap.MaxWPM = math.Max(snap.MaxWPM, wpm)
		}

		if duration > 0 {
			snap.SessionDurations = append(snap.SessionDurations, duration)
			snap.LongestSession = math.Max(snap.LongestSession, duration)
		}

		if mode := rec.Mode.Resolve(); mode.Known() {
			snap.ModeCounts[mode]++
		}

		switch {
		case !ts.Before(weekStart) && !ts.After(now):
			addPeriod(&snap.ThisWeek, words, duration)
		case !ts.Before(lastWeekStart) && ts.Before(weekStart):
			addPeriod(&snap.LastWeek, words, duration)
		}

		tokens := tokenize.Tokenize(rec.Text)
		tokensByRecord[i] = tokens
		snap.TotalWords += len(tokens)

		for _, tok := range tokens {
			freq.add(tok)
			if a.lex.IsFiller(tok) {
				snap.FillerCounts[tok]++
			}
			n := tokenize.Len(tok)
			if n >= uniqueWordMinLen {
				uniqueWords[tok] = struct{}{}
				switch {
				case ts.Before(weekStart):
					beforeWeek[tok] = struct{}{}
				case !ts.After(now):
					thisWeek.add(tok)
				}
			}
			bucket := n - 1
			if bucket >= wordLengthBuckets {
				bucket = wordLengthBuckets - 1
			}
			if bucket >= 0 {
				snap.WordLengthDist[bucket]++
			}
		}
		for _, g := range tokenize.NGrams(tokens, 2) {
			bigrams.add(g)
		}
		for _, g := range tokenize.NGrams(tokens, 3) {
			trigrams.add(g)
		}

		score, pos, neg := a.recordSentiment(rec, tokens)
		sa, ok := sentiment[key]
		if !ok {
			sa = &sentimentAcc{}
			sentiment[key] = sa
		}
		sa.scoreSum += score
		sa.sessions++
		sa.positive += pos
		sa.negative += neg

		if len(tokens) > 0 {
			reading.words += len(tokens)
			reading.sentences += tokenize.Sentences(rec.Text)
			for _, tok := range tokens {
				reading.syllables += tokenize.Syllables(tok)
			}
		}
	}

	snap.Daily, snap.DailyByDate = buildDaily(days)
	for _, d := range snap.Daily {
		if d.Words > snap.MaxWordsInDay {
			snap.MaxWordsInDay = d.Words
		}
	}
	if today, ok := snap.DailyByDate[now.Format(dayLayout)]; ok {
		snap.Today = PeriodStats{Words: today.Words, Sessions: today.Sessions, DurationSeconds: today.DurationSeconds}
	}
	snap.ThisWeekWords = snap.ThisWeek.Words

	dayKeys := make([]string, 0, len(days))
	for key := range days {
		dayKeys = append(dayKeys, key)
	}
	snap.CurrentStreak, snap.LongestStreak = Streaks(dayKeys, now)

	for h := range hourly {
		snap.AvgWPMByHour[h] = hourly[h].rounded()
	}

	snap.UniqueWords = len(uniqueWords)
	if snap.TotalWords > 0 {
		snap.Richness = float64(snap.UniqueWords) / float64(snap.TotalWords) * 100
	}

	snap.TopBigrams = a.topPhrases(bigrams, topBigramLimit)
	snap.TopTrigrams = a.topPhrases(trigrams, topTrigramLimit)
	snap.Sentiment = buildSentiment(sentiment)

	snap.WordFrequency = freq.snapshotMap()
	snap.TopWords = toWordCounts(freq.ranked(func(word string, count int) bool {
		return tokenize.Len(word) >= uniqueWordMinLen && !a.lex.IsStopword(word) && count >= minTopWordCount
	}, topWordLimit))
	snap.RareWords = toWordCounts(freq.ranked(func(word string, count int) bool {
		return tokenize.Len(word) >= vocabWordMinLen && !a.lex.IsCommon(word) && count >= minRareCount
	}, rareWordLimit))

	for _, rk := range thisWeek.ranked(func(word string, _ int) bool {
		_, seen := beforeWeek[word]
		return !seen
	}, 0) {
		snap.NewWordsThisWeek = append(snap.NewWordsThisWeek, rk.key)
	}

	snap.VocabGrowth = vocabGrowth(records, tokensByRecord, loc)
	snap.ReadingLevel = readingLevel(reading)
	return snap
}

func (a *Aggregator) emptySnapshot() Snapshot {
	snap := Snapshot{
		Daily:            []DailyStats{},
		DailyByDate:      map[string]DailyStats{},
		ModeCounts:       make(map[model.Mode]int, len(model.Modes)),
		FillerCounts:     map[string]int{},
		TopBigrams:       []PhraseCount{},
		TopTrigrams:      []PhraseCount{},
		SessionDurations: []float64{},
		Sentiment:        []SentimentPoint{},
		WordFrequency:    map[string]int{},
		TopWords:         []WordCount{},
		NewWordsThisWeek: []string{},
		VocabGrowth:      []VocabPoint{},
		RareWords:        []WordCount{},
		WordLengthDist:   make([]int, wordLengthBuckets),
	}
	for _, m := range model.Modes {
		snap.ModeCounts[m] = 0
	}
	for _, f := range a.lex.Fillers() {
		snap.FillerCounts[f] = 0
	}
	return snap
}

// recordSentiment returns the record's score plus its lexicon hit counts.
func (a *Aggregator) recordSentiment(rec model.SessionRecord, tokens []string) (score float64, positive, negative int) {
	for _, tok := range tokens {
		if a.lex.IsPositive(tok) {
			positive++
		}
		if a.lex.IsNegative(tok) {
			negative++
		}
	}
	if rec.Sentiment != nil && isFinite(*rec.Sentiment) {
		return *rec.Sentiment, positive, negative
	}
	if len(tokens) == 0 {
		return 0, positive, negative
	}
	return float64(positive-negative) / math.Sqrt(float64(len(tokens))), positive, negative
}

func (a *Aggregator) topPhrases(c *counter, limit int) []PhraseCount {
	ranked := c.ranked(func(phrase string, count int) bool {
		if count < minPhraseCount {
			return false
		}
		for _, w := range strings.Fields(phrase) {
			if !a.lex.IsPhraseStopword(w) {
				return true
			}
		}
		return false
	}, limit)
	out := make([]PhraseCount, 0, len(ranked))
	for _, rk := range ranked {
		out = append(out, PhraseCount{Phrase: rk.key, Count: rk.count})
	}
	return out
}

func buildDaily(days map[string]*dayAcc) ([]DailyStats, map[string]DailyStats) {
	keys := make([]string, 0, len(days))
	for key := range days {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	daily := make([]DailyStats, 0, len(keys))
	byDate := make(map[string]DailyStats, len(keys))
	var cumulativeSaved, cumulativeTalking float64
	for _, key := range keys {
		acc := days[key]
		typingMinutes := float64(acc.words) / typingWPM
		dictatingMinutes := acc.duration / 60
		saved := math.Max(0, typingMinutes-dictatingMinutes)
		cumulativeSaved += saved
		cumulativeTalking += dictatingMinutes
		d := DailyStats{
			Date:                     key,
			Words:                    acc.words,
			DurationSeconds:          acc.duration,
			Sessions:                 acc.sessions,
			AvgWPM:                   meanAcc{sum: acc.wpmSum, count: acc.wpmCount}.rounded(),
			TimeSavedToday:           saved,
			CumulativeTimeSaved:      cumulativeSaved,
			CumulativeTalkingMinutes: cumulativeTalking,
		}
		daily = append(daily, d)
		byDate[key] = d
	}
	return daily, byDate
}

func buildSentiment(days map[string]*sentimentAcc) []SentimentPoint {
	out := make([]SentimentPoint, 0, len(days))
	for key, acc := range days {
		score := 0.0
		if acc.sessions > 0 {
			score = acc.scoreSum / float64(acc.sessions)
		}
		out = append(out, SentimentPoint{
			Date:     key,
			Score:    score,
			Positive: acc.positive,
			Negative: acc.negative,
			Sessions: acc.sessions,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func vocabGrowth(records []model.SessionRecord, tokens [][]string, loc *time.Location) []VocabPoint {
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return records[idx[i]].Timestamp.Before(records[idx[j]].Timestamp)
	})

	seen := map[string]struct{}{}
	out := []VocabPoint{}
	for _, i := range idx {
		for _, tok := range tokens[i] {
			if tokenize.Len(tok) >= vocabWordMinLen {
				seen[tok] = struct{}{}
			}
		}
		key := DayKey(records[i].Timestamp, loc)
		if n := len(out); n > 0 && out[n-1].Date == key {
			out[n-1].UniqueWords = len(seen)
			continue
		}
		out = append(out, VocabPoint{Date: key, UniqueWords: len(seen)})
	}
	return out
}

// readingLevel approximates the Flesch-Kincaid grade, clamped to [1, 18].
func readingLevel(r readingAcc) float64 {
	if r.words == 0 || r.sentences == 0 {
		return 0
	}
	wordsPerSentence := float64(r.words) / float64(r.sentences)
	syllablesPerWord := float64(r.syllables) / float64(r.words)
	grade := 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59
	return math.Min(18, math.Max(1, grade))
}

func toWordCounts(ranked []rankedKey) []WordCount {
	out := make([]WordCount, 0, len(ranked))
	for _, rk := range ranked {
		out = append(out, WordCount{Word: rk.key, Count: rk.count})
	}
	return out
}

func addPeriod(p *PeriodStats, words int, duration float64) {
	p.Words += words
	p.Sessions++
	p.DurationSeconds += duration
}

func wpmSample(rec model.SessionRecord) (float64, bool) {
	if !rec.HasWPM() || !isFinite(*rec.WPM) {
		return 0, false
	}
	return *rec.WPM, true
}

func nonNegativeInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func finiteNonNegative(v float64) float64 {
	if !isFinite(v) || v < 0 {
		return 0
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
