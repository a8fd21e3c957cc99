package hierarchy

import (
	"sort"

	trainingModels "trainhub/models/training"
)

// ModuleNode is the immutable index view of a module
type ModuleNode struct {
	ID          uint
	Title       string
	Description string
	Category    string
	OrderIndex  int
	TrainingIDs []uint // ordered by OrderIndex, ties by id
}

// TrainingNode is the immutable index view of a training
type TrainingNode struct {
	ID              uint
	ModuleID        uint
	Title           string
	Description     string
	DurationMinutes int
	OrderIndex      int
	VideoIDs        []uint // ordered by OrderIndex, ties by id
	PrerequisiteIDs []uint
}

// VideoNode is the immutable index view of a video (content unit)
type VideoNode struct {
	ID              uint
	TrainingID      uint
	Title           string
	VideoURL        string
	DurationSeconds int
	OrderIndex      int
}

// Index is a read-only snapshot of the module->training->video hierarchy.
// It is built once and never mutated; a new snapshot replaces the old one
// wholesale (see Provider), so readers never need locks.
type Index struct {
	modules   map[uint]*ModuleNode
	trainings map[uint]*TrainingNode
	videos    map[uint]*VideoNode
	moduleIDs []uint // ordered by OrderIndex, ties by id
}

// NewIndex builds an index from active content rows. Inactive rows must be
// filtered out by the caller; ordering inside the index follows OrderIndex
// with the row id as tie-breaker, matching how the content service displays
// the hierarchy.
func NewIndex(
	modules []trainingModels.Module,
	trainings []trainingModels.Training,
	videos []trainingModels.Video,
	prerequisites []trainingModels.TrainingPrerequisite,
) *Index {
	idx := &Index{
		modules:   make(map[uint]*ModuleNode, len(modules)),
		trainings: make(map[uint]*TrainingNode, len(trainings)),
		videos:    make(map[uint]*VideoNode, len(videos)),
	}

	for _, m := range modules {
		idx.modules[m.ID] = &ModuleNode{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Category:    m.Category,
			OrderIndex:  m.OrderIndex,
		}
		idx.moduleIDs = append(idx.moduleIDs, m.ID)
	}

	for _, t := range trainings {
		module, ok := idx.modules[t.ModuleID]
		if !ok {
			continue // orphaned training, parent module inactive or missing
		}
		idx.trainings[t.ID] = &TrainingNode{
			ID:              t.ID,
			ModuleID:        t.ModuleID,
			Title:           t.Title,
			Description:     t.Description,
			DurationMinutes: t.DurationMinutes,
			OrderIndex:      t.OrderIndex,
		}
		module.TrainingIDs = append(module.TrainingIDs, t.ID)
	}

	for _, v := range videos {
		parent, ok := idx.trainings[v.TrainingID]
		if !ok {
			continue
		}
		idx.videos[v.ID] = &VideoNode{
			ID:              v.ID,
			TrainingID:      v.TrainingID,
			Title:           v.Title,
			VideoURL:        v.VideoURL,
			DurationSeconds: v.DurationSeconds,
			OrderIndex:      v.OrderIndex,
		}
		parent.VideoIDs = append(parent.VideoIDs, v.ID)
	}

	for _, p := range prerequisites {
		node, ok := idx.trainings[p.TrainingID]
		if !ok {
			continue
		}
		if _, ok := idx.trainings[p.RequiresTrainingID]; !ok {
			continue
		}
		node.PrerequisiteIDs = append(node.PrerequisiteIDs, p.RequiresTrainingID)
	}

	sortByOrder(idx.moduleIDs, func(id uint) (int, uint) {
		return idx.modules[id].OrderIndex, id
	})
	for _, m := range idx.modules {
		sortByOrder(m.TrainingIDs, func(id uint) (int, uint) {
			return idx.trainings[id].OrderIndex, id
		})
	}
	for _, t := range idx.trainings {
		sortByOrder(t.VideoIDs, func(id uint) (int, uint) {
			return idx.videos[id].OrderIndex, id
		})
	}

	return idx
}

func sortByOrder(ids []uint, key func(uint) (int, uint)) {
	sort.Slice(ids, func(i, j int) bool {
		oi, ti := key(ids[i])
		oj, tj := key(ids[j])
		if oi != oj {
			return oi < oj
		}
		return ti < tj
	})
}

// Module returns the module node for the given id
func (idx *Index) Module(id uint) (*ModuleNode, bool) {
	m, ok := idx.modules[id]
	return m, ok
}

// Training returns the training node for the given id
func (idx *Index) Training(id uint) (*TrainingNode, bool) {
	t, ok := idx.trainings[id]
	return t, ok
}

// Video returns the video node for the given id
func (idx *Index) Video(id uint) (*VideoNode, bool) {
	v, ok := idx.videos[id]
	return v, ok
}

// ModuleIDs returns all module ids in display order
func (idx *Index) ModuleIDs() []uint {
	return idx.moduleIDs
}

// ModuleTrainings returns the ordered training ids of a module
func (idx *Index) ModuleTrainings(moduleID uint) []uint {
	if m, ok := idx.modules[moduleID]; ok {
		return m.TrainingIDs
	}
	return nil
}

// TrainingVideos returns the ordered video ids of a training
func (idx *Index) TrainingVideos(trainingID uint) []uint {
	if t, ok := idx.trainings[trainingID]; ok {
		return t.VideoIDs
	}
	return nil
}

// NextVideoInTraining returns the video following videoID within the same
// training, if any.
func (idx *Index) NextVideoInTraining(videoID uint) (uint, bool) {
	v, ok := idx.videos[videoID]
	if !ok {
		return 0, false
	}
	siblings := idx.TrainingVideos(v.TrainingID)
	for i, id := range siblings {
		if id == videoID && i+1 < len(siblings) {
			return siblings[i+1], true
		}
	}
	return 0, false
}

// NextTrainingInModule returns the training following trainingID within its
// module, if any.
func (idx *Index) NextTrainingInModule(trainingID uint) (uint, bool) {
	t, ok := idx.trainings[trainingID]
	if !ok {
		return 0, false
	}
	siblings := idx.ModuleTrainings(t.ModuleID)
	for i, id := range siblings {
		if id == trainingID && i+1 < len(siblings) {
			return siblings[i+1], true
		}
	}
	return 0, false
}

// FirstVideo returns the first video of a training, if the training has any
func (idx *Index) FirstVideo(trainingID uint) (uint, bool) {
	videos := idx.TrainingVideos(trainingID)
	if len(videos) == 0 {
		return 0, false
	}
	return videos[0], true
}

// TotalVideos returns the number of videos in the snapshot
func (idx *Index) TotalVideos() int {
	return len(idx.videos)
}

// TotalTrainings returns the number of trainings in the snapshot
func (idx *Index) TotalTrainings() int {
	return len(idx.trainings)
}

// TotalModules returns the number of modules in the snapshot
func (idx *Index) TotalModules() int {
	return len(idx.modules)
}
