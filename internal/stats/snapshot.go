package stats

import "github.com/verte-zerg/dictstat/internal/model"

const (
	topBigramLimit    = 10
	topTrigramLimit   = 5
	topWordLimit      = 40
	rareWordLimit     = 20
	wordLengthBuckets = 12
)

// DailyStats is the per-calendar-day rollup.
type DailyStats struct {
	Date                     string   `json:"date"`
	Words                    int      `json:"words"`
	DurationSeconds          float64  `json:"duration"`
	Sessions                 int      `json:"entries"`
	AvgWPM                   *float64 `json:"avgWpm"`
	TimeSavedToday           float64  `json:"timeSavedToday"`
	CumulativeTimeSaved      float64  `json:"cumulativeTimeSaved"`
	CumulativeTalkingMinutes float64  `json:"cumulativeTalkingMinutes"`
}

// PeriodStats aggregates a time window.
type PeriodStats struct {
	Words           int     `json:"words"`
	Sessions        int     `json:"sessions"`
	DurationSeconds float64 `json:"duration"`
}

// PhraseCount is a ranked n-gram.
type PhraseCount struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// WordCount is a ranked word.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// SentimentPoint is the mean sentiment of one day.
type SentimentPoint struct {
	Date     string  `json:"date"`
	Score    float64 `json:"score"`
	Positive int     `json:"positive"`
	Negative int     `json:"negative"`
	Sessions int     `json:"sessions"`
}

// VocabPoint is the cumulative vocabulary size at the end of a day.
type VocabPoint struct {
	Date        string `json:"date"`
	UniqueWords int    `json:"uniqueWords"`
}

// Snapshot holds every derived metric for one aggregation run.
// Consumers read it and never mutate it.
type Snapshot struct {
	ActivityMatrix [7][24]int            `json:"activityMatrix"`
	Daily          []DailyStats          `json:"dailyArray"`
	DailyByDate    map[string]DailyStats `json:"dailyData"`
	ModeCounts     map[model.Mode]int    `json:"modeCounts"`

	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`

	MaxWPM         float64 `json:"maxWpm"`
	MaxWordsInDay  int     `json:"maxWordsInDay"`
	LongestSession float64 `json:"longestSession"`

	FillerCounts map[string]int `json:"fillerCounts"`
	UniqueWords  int            `json:"uniqueWords"`
	TotalWords   int            `json:"totalWords"`
	Richness     float64        `json:"richness"`

	TopBigrams  []PhraseCount `json:"topBigrams"`
	TopTrigrams []PhraseCount `json:"topTrigrams"`

	AvgWPMByHour     [24]*float64     `json:"avgWpmByHour"`
	SessionDurations []float64        `json:"sessionDurations"`
	Sentiment        []SentimentPoint `json:"sentimentArray"`

	ThisWeek      PeriodStats `json:"thisWeekData"`
	LastWeek      PeriodStats `json:"lastWeekData"`
	Today         PeriodStats `json:"todayData"`
	ThisWeekWords int         `json:"thisWeekWords"`

	WordFrequency map[string]int `json:"wordFrequency"`
	TopWords      []WordCount    `json:"topWords"`

	NewWordsThisWeek []string     `json:"newWordsThisWeek"`
	VocabGrowth      []VocabPoint `json:"vocabGrowthArray"`
	RareWords        []WordCount  `json:"rareWords"`
	ReadingLevel     float64      `json:"readingLevel"`
	// WordLengthDist[i] counts tokens of length i+1; the last bucket is open ended.
	WordLengthDist []int `json:"wordLengthDist"`

	Sessions int `json:"sessions"`
}
