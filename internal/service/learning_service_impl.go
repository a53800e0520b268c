package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/dayweave/internal/db"
	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/repository"
	"github.com/alexanderramin/dayweave/internal/scheduler"
	"gopkg.in/yaml.v3"
)

// learningFile is the analytics export. JSON is accepted too, being a
// subset of YAML.
type learningFile struct {
	Concentration []struct {
		Hour  *int    `yaml:"hour"`
		Score float64 `yaml:"score"`
	} `yaml:"concentration"`
	Durations []struct {
		TaskName        string  `yaml:"task_name"`
		AverageDuration float64 `yaml:"average_duration"`
		SampleSize      int     `yaml:"sample_size"`
		Accuracy        float64 `yaml:"accuracy"`
	} `yaml:"durations"`
}

type learningService struct {
	learning repository.LearningRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewLearningService(learning repository.LearningRepo, uow db.UnitOfWork, observers ...UseCaseObserver) LearningService {
	return &learningService{
		learning: learning,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *learningService) Import(ctx context.Context, r io.Reader) (result *LearningImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		observe(ctx, s.observer, "learning.import", startedAt, fields, &err)
	}()

	scores, durations, err := parseLearning(r)
	if err != nil {
		return nil, err
	}
	fields["concentration"] = len(scores)
	fields["durations"] = len(durations)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLearning := repository.NewSQLiteLearningRepo(tx)
		if err := txLearning.ReplaceConcentration(ctx, scores); err != nil {
			return err
		}
		return txLearning.ReplaceDurations(ctx, durations)
	})
	if err != nil {
		return nil, err
	}
	return &LearningImportResult{
		ConcentrationCount: len(scores),
		DurationCount:      len(durations),
	}, nil
}

func (s *learningService) Signals(ctx context.Context) (scheduler.LearningSignals, error) {
	scores, err := s.learning.ListConcentration(ctx)
	if err != nil {
		return scheduler.LearningSignals{}, err
	}
	durations, err := s.learning.ListDurations(ctx)
	if err != nil {
		return scheduler.LearningSignals{}, err
	}
	return scheduler.LearningSignals{Concentration: scores, Durations: durations}, nil
}

func parseLearning(r io.Reader) ([]domain.ConcentrationScore, []domain.TaskDurationLearning, error) {
	var f learningFile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("parsing learning file: %w", err)
	}

	seen := make(map[int]bool, len(f.Concentration))
	scores := make([]domain.ConcentrationScore, 0, len(f.Concentration))
	for i, c := range f.Concentration {
		if c.Hour == nil {
			return nil, nil, fmt.Errorf("concentration[%d]: hour is required", i)
		}
		h := *c.Hour
		if h < 0 || h > 23 {
			return nil, nil, fmt.Errorf("concentration[%d]: hour %d must be between 0 and 23", i, h)
		}
		if seen[h] {
			return nil, nil, fmt.Errorf("concentration[%d]: duplicate hour %d", i, h)
		}
		seen[h] = true
		scores = append(scores, domain.ConcentrationScore{Hour: h, Score: scheduler.ClampUnit(c.Score)})
	}

	names := make(map[string]bool, len(f.Durations))
	durations := make([]domain.TaskDurationLearning, 0, len(f.Durations))
	for i, d := range f.Durations {
		name := strings.TrimSpace(d.TaskName)
		if name == "" {
			return nil, nil, fmt.Errorf("durations[%d]: task_name is required", i)
		}
		if names[name] {
			return nil, nil, fmt.Errorf("durations[%d]: duplicate task_name %q", i, name)
		}
		if d.SampleSize < 0 {
			return nil, nil, fmt.Errorf("durations[%d]: sample_size must not be negative", i)
		}
		names[name] = true
		durations = append(durations, domain.TaskDurationLearning{
			TaskName:        name,
			AverageDuration: d.AverageDuration,
			SampleSize:      d.SampleSize,
			Accuracy:        scheduler.ClampUnit(d.Accuracy),
		})
	}
	return scores, durations, nil
}
