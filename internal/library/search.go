package library

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"lessonreel/internal/lesson"
	"lessonreel/internal/textutil"
)

// SearchResult is a completed task ranked against a query.
type SearchResult struct {
	Task  *Task
	Score float64
}

// Search ranks completed lessons by TF-IDF cosine similarity between query
// and the lesson's title, headings and block text. Tasks scoring zero are
// omitted; limit <= 0 returns every match.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	queryPrint := textutil.NewFingerprint(query)
	if queryPrint == nil {
		return nil, nil
	}
	tasks, err := s.List(ctx, lesson.StatusCompleted)
	if err != nil {
		return nil, err
	}

	corpus := textutil.NewCorpus()
	prints := make([]*textutil.Fingerprint, len(tasks))
	for i, task := range tasks {
		content, err := task.Lesson()
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", task.ShortID(), err)
		}
		prints[i] = textutil.NewFingerprint(searchText(content))
		corpus.Add(prints[i])
	}
	idf := corpus.IDF()
	queryPrint = queryPrint.Weighted(idf)

	var results []SearchResult
	for i, task := range tasks {
		score := queryPrint.Similarity(prints[i].Weighted(idf))
		if score <= 0 {
			continue
		}
		results = append(results, SearchResult{Task: task, Score: score})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func searchText(content *lesson.Content) string {
	var b strings.Builder
	b.WriteString(content.Title)
	for _, section := range content.Sections {
		b.WriteByte('\n')
		b.WriteString(section.Heading)
		for _, block := range section.Blocks {
			b.WriteByte('\n')
			b.WriteString(block.Content)
		}
	}
	return b.String()
}
