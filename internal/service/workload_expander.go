package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
	"github.com/unsis-dev/exam-calendar-api/pkg/config"
	appErrors "github.com/unsis-dev/exam-calendar-api/pkg/errors"
)

type programReader interface {
	FindByID(ctx context.Context, id string) (*models.Program, error)
	ListGroups(ctx context.Context, programID string) ([]models.Group, error)
}

type scheduleReader interface {
	ListByProgramPeriod(ctx context.Context, programID, periodID string) ([]models.TeachingRecord, error)
	ListByGroup(ctx context.Context, groupID string) ([]models.TeachingRecord, error)
}

type courseReader interface {
	MapByIDs(ctx context.Context, ids []string) (map[string]models.Course, error)
}

// ExamUnit is one (course, group) pair to be scheduled, anchored on the
// earliest weekly class meeting of the pair.
type ExamUnit struct {
	Course  models.Course
	Group   models.Group
	Primary models.TeachingRecord
}

// Workload is the expanded exam demand of a program for one period.
type Workload struct {
	Program models.Program
	Class   models.ProgramClass
	// Units ordered by (group id, course id).
	Units []ExamUnit
	// CourseHeadcount sums group headcounts per course.
	CourseHeadcount map[string]int
	// LabHistory holds room ids the program's classes already use.
	LabHistory map[string]struct{}
}

// WorkloadExpander turns a program's teaching records into exam units.
type WorkloadExpander struct {
	programs  programReader
	schedules scheduleReader
	courses   courseReader
	cfg       config.SchedulerConfig
	logger    *zap.Logger
}

// NewWorkloadExpander wires the expander.
func NewWorkloadExpander(programs programReader, schedules scheduleReader, courses courseReader, cfg config.SchedulerConfig, logger *zap.Logger) *WorkloadExpander {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkloadExpander{programs: programs, schedules: schedules, courses: courses, cfg: cfg, logger: logger}
}

// Expand builds the unit set for (program, period). Groups absent from
// the period snapshot are backfilled with reference records taken from
// any period, so every group of the program is represented.
func (e *WorkloadExpander) Expand(ctx context.Context, programID, periodID string) (*Workload, error) {
	program, err := e.programs.FindByID(ctx, programID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program")
	}

	groups, err := e.programs.ListGroups(ctx, programID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program groups")
	}

	records, err := e.schedules.ListByProgramPeriod(ctx, programID, periodID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teaching records")
	}

	covered := make(map[string]bool, len(records))
	for _, record := range records {
		covered[record.GroupID] = true
	}

	// Backfill groups with no record in this period using reference
	// records: per course, the (dayOfWeek, startTime)-earliest meeting
	// from any period.
	for _, group := range groups {
		if covered[group.ID] {
			continue
		}
		anyPeriod, err := e.schedules.ListByGroup(ctx, group.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reference records")
		}
		references := earliestPerCourse(anyPeriod)
		if len(references) > 0 {
			e.logger.Info("group backfilled from reference records",
				zap.String("group_id", group.ID),
				zap.Int("courses", len(references)))
		}
		records = append(records, references...)
	}

	groupIndex := make(map[string]models.Group, len(groups))
	for _, group := range groups {
		groupIndex[group.ID] = group
	}

	// Primary record per (course, group): the earliest weekly meeting.
	type unitKey struct{ courseID, groupID string }
	primaries := make(map[unitKey]models.TeachingRecord)
	for _, record := range records {
		if record.CourseID == "" || record.GroupID == "" || record.StartTime >= record.EndTime {
			continue
		}
		if _, known := groupIndex[record.GroupID]; !known {
			continue
		}
		key := unitKey{record.CourseID, record.GroupID}
		current, exists := primaries[key]
		if !exists || earlierMeeting(record, current) {
			primaries[key] = record
		}
	}

	if len(primaries) == 0 {
		return &Workload{
			Program:         *program,
			Class:           e.Classify(*program),
			CourseHeadcount: map[string]int{},
			LabHistory:      map[string]struct{}{},
		}, nil
	}

	courseIDs := make([]string, 0, len(primaries))
	seenCourses := make(map[string]bool)
	for key := range primaries {
		if !seenCourses[key.courseID] {
			seenCourses[key.courseID] = true
			courseIDs = append(courseIDs, key.courseID)
		}
	}
	sort.Strings(courseIDs)

	courses, err := e.courses.MapByIDs(ctx, courseIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}

	workload := &Workload{
		Program:         *program,
		Class:           e.Classify(*program),
		CourseHeadcount: make(map[string]int),
		LabHistory:      make(map[string]struct{}),
	}
	for _, record := range records {
		if record.RoomID != "" {
			workload.LabHistory[record.RoomID] = struct{}{}
		}
	}

	for key, primary := range primaries {
		course, known := courses[key.courseID]
		if !known {
			continue
		}
		workload.Units = append(workload.Units, ExamUnit{
			Course:  course,
			Group:   groupIndex[key.groupID],
			Primary: primary,
		})
		workload.CourseHeadcount[key.courseID] += groupIndex[key.groupID].Headcount
	}

	sort.Slice(workload.Units, func(i, j int) bool {
		if workload.Units[i].Group.ID == workload.Units[j].Group.ID {
			return workload.Units[i].Course.ID < workload.Units[j].Course.ID
		}
		return workload.Units[i].Group.ID < workload.Units[j].Group.ID
	})

	return workload, nil
}

// Classify tags a program social or health-like. Classification is
// program-wide; groups never mix policies.
func (e *WorkloadExpander) Classify(program models.Program) models.ProgramClass {
	for _, id := range e.cfg.SocialProgramIDs {
		if strings.EqualFold(program.ID, id) {
			return models.ProgramClassSocial
		}
	}
	name := strings.ToLower(program.Name)
	for _, keyword := range e.cfg.SocialKeywords {
		if keyword != "" && strings.Contains(name, strings.ToLower(keyword)) {
			return models.ProgramClassSocial
		}
	}
	return models.ProgramClassHealthLike
}

func earliestPerCourse(records []models.TeachingRecord) []models.TeachingRecord {
	best := make(map[string]models.TeachingRecord)
	for _, record := range records {
		if record.CourseID == "" || record.StartTime >= record.EndTime {
			continue
		}
		current, exists := best[record.CourseID]
		if !exists || earlierMeeting(record, current) {
			best[record.CourseID] = record
		}
	}
	result := make([]models.TeachingRecord, 0, len(best))
	for _, record := range best {
		result = append(result, record)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseID < result[j].CourseID })
	return result
}

func earlierMeeting(a, b models.TeachingRecord) bool {
	if a.DayOfWeek != b.DayOfWeek {
		return a.DayOfWeek < b.DayOfWeek
	}
	return a.StartTime < b.StartTime
}
