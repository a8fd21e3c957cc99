package progress

import (
	"fmt"

	"trainhub/hierarchy"
	trainingModels "trainhub/models/training"

	"gorm.io/gorm"
)

// Service is the orchestrating entry point for progress events: validate,
// merge into the ledger, re-evaluate the owning training, and trigger
// certificate issuance on a false-to-true completion transition. No step
// retries automatically; the merge's idempotence makes caller retries safe.
type Service struct {
	db        *gorm.DB
	hier      *hierarchy.Provider
	ledger    *Ledger
	evaluator *Evaluator
	issuer    *Issuer
}

// NewService wires the engine components over one database handle
func NewService(db *gorm.DB, hier *hierarchy.Provider, certSecret string) *Service {
	return &Service{
		db:        db,
		hier:      hier,
		ledger:    NewLedger(db, hier),
		evaluator: NewEvaluator(db, hier),
		issuer:    NewIssuer(db, certSecret),
	}
}

// Evaluator exposes the read-side evaluator for dashboard queries
func (s *Service) Evaluator() *Evaluator {
	return s.evaluator
}

// SubmitResult is what a progress submission returns to the caller
type SubmitResult struct {
	Record           *trainingModels.UserProgress
	TrainingID       uint
	TrainingProgress float64
	TrainingComplete bool
	Certificate      *trainingModels.UserCertificate
	NextUnit         *hierarchy.VideoNode
}

// SubmitProgress applies one playback event end to end. A failure before the
// ledger write changes nothing; a failure after it is safe to retry because
// recomputation and issuance are idempotent.
func (s *Service) SubmitProgress(userID, videoID uint, elapsedSeconds int, completedFlag *bool) (*SubmitResult, error) {
	idx := s.hier.Current()
	if idx == nil {
		return nil, fmt.Errorf("%w: hierarchy snapshot not loaded", ErrStorageUnavailable)
	}
	video, ok := idx.Video(videoID)
	if !ok {
		return nil, fmt.Errorf("%w: video %d", ErrUnknownContentUnit, videoID)
	}

	record, err := s.ledger.Merge(userID, videoID, elapsedSeconds, completedFlag)
	if err != nil {
		return nil, err
	}

	fraction, err := s.evaluator.TrainingProgress(userID, video.TrainingID)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{
		Record:           record,
		TrainingID:       video.TrainingID,
		TrainingProgress: fraction,
	}

	// A training can only newly complete through a unit that is itself
	// completed, so issuance is only considered on completed records. The
	// issuer tolerates repeat invocations: concurrent completions of the last
	// units race here by design.
	if record.Completed {
		done, err := s.evaluator.TrainingFullyCompleted(userID, video.TrainingID)
		if err != nil {
			return nil, err
		}
		result.TrainingComplete = done
		if done {
			cert, _, err := s.issuer.Issue(userID, video.TrainingID)
			if err != nil {
				return nil, err
			}
			result.Certificate = cert
		}
	}

	next, err := s.evaluator.NextRecommendedUnit(userID, videoID)
	if err != nil {
		return nil, err
	}
	result.NextUnit = next

	return result, nil
}

// GetVideoStatus returns the derived status and raw record for one unit
func (s *Service) GetVideoStatus(userID, videoID uint) (VideoState, *trainingModels.UserProgress, error) {
	idx := s.hier.Current()
	if idx == nil {
		return "", nil, fmt.Errorf("%w: hierarchy snapshot not loaded", ErrStorageUnavailable)
	}
	if _, ok := idx.Video(videoID); !ok {
		return "", nil, fmt.Errorf("%w: video %d", ErrUnknownContentUnit, videoID)
	}

	record, err := s.ledger.Record(userID, videoID)
	if err != nil {
		return "", nil, err
	}
	return VideoStatus(record), record, nil
}

// GetTrainingProgress returns the completion fraction and the strict
// fully-completed flag for a training
func (s *Service) GetTrainingProgress(userID, trainingID uint) (float64, bool, error) {
	fraction, err := s.evaluator.TrainingProgress(userID, trainingID)
	if err != nil {
		return 0, false, err
	}
	done, err := s.evaluator.TrainingFullyCompleted(userID, trainingID)
	if err != nil {
		return 0, false, err
	}
	return fraction, done, nil
}

// GetModuleProgress returns the user's aggregate fraction for a module
func (s *Service) GetModuleProgress(userID, moduleID uint) (float64, error) {
	return s.evaluator.ModuleProgress(userID, moduleID)
}

// GetNextRecommendedUnit returns the advisory next unit after videoID
func (s *Service) GetNextRecommendedUnit(userID, videoID uint) (*hierarchy.VideoNode, error) {
	return s.evaluator.NextRecommendedUnit(userID, videoID)
}

// ListCertificates returns the user's certificates, newest first
func (s *Service) ListCertificates(userID uint) ([]trainingModels.UserCertificate, error) {
	return s.issuer.List(userID)
}

// ReconcileCertificates sweeps trainings the user has fully completed but
// holds no certificate for, and issues them. Bounds the issuance lag after a
// crash between a ledger write and its certificate to one sweep cycle.
func (s *Service) ReconcileCertificates(userID uint) (int, error) {
	idx := s.hier.Current()
	if idx == nil {
		return 0, fmt.Errorf("%w: hierarchy snapshot not loaded", ErrStorageUnavailable)
	}

	issued := 0
	for _, moduleID := range idx.ModuleIDs() {
		for _, trainingID := range idx.ModuleTrainings(moduleID) {
			// Empty trainings are vacuously complete but carry nothing to
			// certify; a certificate attests to watched content.
			if len(idx.TrainingVideos(trainingID)) == 0 {
				continue
			}
			done, err := s.evaluator.TrainingFullyCompleted(userID, trainingID)
			if err != nil {
				return issued, err
			}
			if !done {
				continue
			}
			_, created, err := s.issuer.Issue(userID, trainingID)
			if err != nil {
				return issued, err
			}
			if created {
				issued++
			}
		}
	}
	return issued, nil
}
