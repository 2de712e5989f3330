package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/unsis-dev/exam-calendar-api/internal/dto"
	"github.com/unsis-dev/exam-calendar-api/internal/models"
	"github.com/unsis-dev/exam-calendar-api/internal/repository"
	"github.com/unsis-dev/exam-calendar-api/pkg/config"
	appErrors "github.com/unsis-dev/exam-calendar-api/pkg/errors"
)

type examStore interface {
	Create(ctx context.Context, exec sqlx.ExtContext, request *models.ExamRequest) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id string) error
	CreateGroup(ctx context.Context, exec sqlx.ExtContext, group *models.ExamGroup) error
	CreateRoomAssignment(ctx context.Context, exec sqlx.ExtContext, assignment *models.RoomAssignment) error
	ListRoomBookingsBetween(ctx context.Context, exec sqlx.ExtContext, first, last time.Time) ([]models.RoomBooking, error)
	ListRequestIDsForSelector(ctx context.Context, exec sqlx.ExtContext, periodID, evaluationID string, courseIDs []string) ([]string, error)
	DeleteCascade(ctx context.Context, exec sqlx.ExtContext, requestIDs []string) error
}

type juryStore interface {
	ListPermissionsByCourse(ctx context.Context, courseID string) ([]models.JuryPermission, error)
	ListBookingsForWindow(ctx context.Context, exec sqlx.ExtContext, periodID, evaluationID string) ([]models.JuryBooking, error)
	CreateAssignment(ctx context.Context, exec sqlx.ExtContext, assignment *models.JuryAssignment) error
}

type teacherLister interface {
	ListActive(ctx context.Context) ([]models.Teacher, error)
}

type roomLister interface {
	ListAvailable(ctx context.Context) ([]models.Room, error)
}

type courseTaughtLister interface {
	ListCourseIDsTaught(ctx context.Context, programID, periodID string) ([]string, error)
}

type courseTeacherLister interface {
	ListTeacherIDsForCourse(ctx context.Context, courseID string) ([]string, error)
}

type evaluationReader interface {
	FindEvaluation(ctx context.Context, id string) (*models.EvaluationKind, error)
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type generationMetrics interface {
	CalendarGenerated(programClass string)
	RequestsCreated(count int)
	ConflictsDetected(count int)
}

type calendarCacheInvalidator interface {
	InvalidateCalendar(ctx context.Context, programID, periodID, evaluationID string)
}

// CalendarGeneratorService builds the draft exam calendar for one
// program. Generation is greedy and deterministic: it reports
// conflicts, it does not backtrack.
type CalendarGeneratorService struct {
	resolver    *PeriodResolver
	windows     *WindowManager
	expander    *WorkloadExpander
	exams       examStore
	juries      juryStore
	teachers    teacherLister
	rooms       roomLister
	courses     courseTaughtLister
	courseStaff courseTeacherLister
	evaluations evaluationReader
	tx          txProvider
	cache       calendarCacheInvalidator
	metrics     generationMetrics
	validator   *validator.Validate
	logger      *zap.Logger
	cfg         config.SchedulerConfig
}

// NewCalendarGeneratorService wires the generator dependencies.
func NewCalendarGeneratorService(
	resolver *PeriodResolver,
	windows *WindowManager,
	expander *WorkloadExpander,
	exams examStore,
	juries juryStore,
	teachers teacherLister,
	rooms roomLister,
	courses courseTaughtLister,
	courseStaff courseTeacherLister,
	evaluations evaluationReader,
	tx txProvider,
	cache calendarCacheInvalidator,
	metrics generationMetrics,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg config.SchedulerConfig,
) *CalendarGeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxJuryLoad <= 0 {
		cfg.MaxJuryLoad = 3
	}
	return &CalendarGeneratorService{
		resolver:    resolver,
		windows:     windows,
		expander:    expander,
		exams:       exams,
		juries:      juries,
		teachers:    teachers,
		rooms:       rooms,
		courses:     courses,
		courseStaff: courseStaff,
		evaluations: evaluations,
		tx:          tx,
		cache:       cache,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
	}
}

// placement is a unit the policy managed to place, before persistence.
type placement struct {
	unit        ExamUnit
	date        time.Time
	start       models.ClockTime
	end         models.ClockTime
	room        *models.Room
	roomWarning string
}

// generation carries the per-call mutable state.
type generation struct {
	tx        *sqlx.Tx
	window    *models.ApplicationWindow
	board     *ReservationBoard
	picker    *RoomPicker
	allocator *DayAllocator
	teachers  []models.Teacher
	conflicts []dto.UnitConflict
	warnings  []string
	created   int
}

// Generate runs the full pipeline: resolve the period, regenerate the
// program's slice of the calendar, place every unit, persist.
func (s *CalendarGeneratorService) Generate(ctx context.Context, programID string, req dto.GenerateCalendarRequest) (*dto.GenerateCalendarResponse, error) {
	if programID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "program binding is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid calendar generation payload")
	}

	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must be an ISO date")
	}
	holidays, err := parseHolidays(req.Holidays)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolver.Resolve(ctx, startDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.evaluations.FindEvaluation(ctx, req.EvaluationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "evaluation kind not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluation kind")
	}

	workload, err := s.expander.Expand(ctx, programID, resolved.Period.ID)
	if err != nil {
		return nil, err
	}

	response := &dto.GenerateCalendarResponse{
		Conflicts:          []dto.UnitConflict{},
		Warnings:           []string{},
		ResolvedPeriodName: resolved.Period.DisplayName,
		ResolvedSemester:   resolved.SemesterLabel,
	}
	if len(workload.Units) == 0 {
		response.Warnings = append(response.Warnings,
			fmt.Sprintf("program %s has no teaching records in period %s", programID, resolved.Period.ID))
		return response, nil
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	gen := &generation{tx: tx, board: NewReservationBoard(), allocator: NewDayAllocator(holidays)}

	gen.window, err = s.windows.Ensure(ctx, tx, resolved.Period.ID, req.EvaluationID, startDate)
	if err != nil {
		return nil, err
	}

	if err = s.regenerate(ctx, tx, programID, resolved.Period.ID, req.EvaluationID); err != nil {
		return nil, err
	}

	if err = s.seedBoard(ctx, gen, resolved.Period.ID, req.EvaluationID); err != nil {
		return nil, err
	}

	availableRooms, roomsErr := s.rooms.ListAvailable(ctx)
	if roomsErr != nil {
		err = appErrors.Wrap(roomsErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
		return nil, err
	}
	gen.picker = NewRoomPicker(gen.board, availableRooms, s.cfg.PreferProgramLabs, s.logger)

	gen.teachers, err = s.teachers.ListActive(ctx)
	if err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teachers")
		return nil, err
	}

	var placements []placement
	switch workload.Class {
	case models.ProgramClassSocial:
		placements, err = s.placeSocial(ctx, gen, workload, startDate)
	default:
		placements, err = s.placeHealthLike(ctx, gen, workload, startDate)
	}
	if err != nil {
		return nil, err
	}

	if err = s.persist(ctx, gen, workload, resolved.Period.ID, req.EvaluationID, placements); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit calendar")
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateCalendar(ctx, programID, resolved.Period.ID, req.EvaluationID)
	}
	if s.metrics != nil {
		s.metrics.CalendarGenerated(string(workload.Class))
		s.metrics.RequestsCreated(gen.created)
		s.metrics.ConflictsDetected(len(gen.conflicts))
	}

	s.logger.Info("exam calendar generated",
		zap.String("program_id", programID),
		zap.String("period_id", resolved.Period.ID),
		zap.String("evaluation_id", req.EvaluationID),
		zap.Int("created", gen.created),
		zap.Int("conflicts", len(gen.conflicts)))

	response.CreatedCount = gen.created
	response.Conflicts = gen.conflicts
	response.Warnings = append(response.Warnings, gen.warnings...)
	return response, nil
}

// regenerate removes the program's prior requests for the tuple. Other
// programs sharing the period and evaluation are left untouched.
func (s *CalendarGeneratorService) regenerate(ctx context.Context, tx *sqlx.Tx, programID, periodID, evaluationID string) error {
	courseIDs, err := s.courses.ListCourseIDsTaught(ctx, programID, periodID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve program courses")
	}
	requestIDs, err := s.exams.ListRequestIDsForSelector(ctx, tx, periodID, evaluationID, courseIDs)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to lock prior exam requests")
	}
	if len(requestIDs) == 0 {
		return nil
	}
	if err := s.exams.DeleteCascade(ctx, tx, requestIDs); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove prior exam requests")
	}
	s.logger.Info("prior calendar removed",
		zap.String("program_id", programID),
		zap.Int("requests", len(requestIDs)))
	return nil
}

func (s *CalendarGeneratorService) seedBoard(ctx context.Context, gen *generation, periodID, evaluationID string) error {
	roomBookings, err := s.exams.ListRoomBookingsBetween(ctx, gen.tx, gen.window.FirstDate, gen.window.LastDate)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed room reservations")
	}
	gen.board.SeedRoomBookings(roomBookings)

	juryBookings, err := s.juries.ListBookingsForWindow(ctx, gen.tx, periodID, evaluationID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed jury reservations")
	}
	gen.board.SeedJuryBookings(juryBookings)
	return nil
}

// placeSocial schedules exams exactly as the weekly class appears:
// same hour, and for written mode the same room. The k-th unit of each
// group lands on the k-th eligible date.
func (s *CalendarGeneratorService) placeSocial(ctx context.Context, gen *generation, workload *Workload, startDate time.Time) ([]placement, error) {
	byGroup := unitsByGroup(workload.Units)
	groupIDs := sortedGroupIDs(byGroup)

	maxUnits := 0
	for _, units := range byGroup {
		if len(units) > maxUnits {
			maxUnits = len(units)
		}
	}

	dates, err := gen.allocator.Collect(startDate, gen.window, maxUnits, s.extender(ctx, gen))
	if err != nil {
		return nil, err
	}

	var placements []placement
	for _, groupID := range groupIDs {
		for k, unit := range byGroup[groupID] {
			if k >= len(dates) {
				gen.conflicts = append(gen.conflicts, dto.UnitConflict{
					Type:     appErrors.ErrWindowExhausted.Code,
					CourseID: unit.Course.ID,
					GroupID:  unit.Group.ID,
					Message:  "no eligible date left in the application window",
				})
				continue
			}
			placements = append(placements, s.placeUnit(ctx, gen, workload, unit, dates[k], unit.Primary.StartTime, unit.Primary.EndTime, true)...)
		}
	}
	return placements, nil
}

// placeHealthLike schedules by position: on date p every group sits its
// p-th course, groups sharing a course share the hour.
func (s *CalendarGeneratorService) placeHealthLike(ctx context.Context, gen *generation, workload *Workload, startDate time.Time) ([]placement, error) {
	byGroup := unitsByGroup(workload.Units)
	groupIDs := sortedGroupIDs(byGroup)

	positions := 0
	for _, units := range byGroup {
		if len(units) > positions {
			positions = len(units)
		}
	}

	dates, err := gen.allocator.Collect(startDate, gen.window, positions, s.extender(ctx, gen))
	if err != nil {
		return nil, err
	}

	var placements []placement
	for p := 0; p < positions; p++ {
		if p >= len(dates) {
			for _, groupID := range groupIDs {
				if p < len(byGroup[groupID]) {
					unit := byGroup[groupID][p]
					gen.conflicts = append(gen.conflicts, dto.UnitConflict{
						Type:     appErrors.ErrWindowExhausted.Code,
						CourseID: unit.Course.ID,
						GroupID:  unit.Group.ID,
						Message:  "no eligible date left in the application window",
					})
				}
			}
			continue
		}

		// Shared hour per course at this position: first primary wins.
		courseTimes := make(map[string][2]models.ClockTime)
		for _, groupID := range groupIDs {
			if p >= len(byGroup[groupID]) {
				continue
			}
			unit := byGroup[groupID][p]
			if _, seen := courseTimes[unit.Course.ID]; !seen && unit.Primary.StartTime != unit.Primary.EndTime {
				courseTimes[unit.Course.ID] = [2]models.ClockTime{unit.Primary.StartTime, unit.Primary.EndTime}
			}
		}

		for _, groupID := range groupIDs {
			if p >= len(byGroup[groupID]) {
				continue
			}
			unit := byGroup[groupID][p]
			span, ok := courseTimes[unit.Course.ID]
			if !ok {
				gen.conflicts = append(gen.conflicts, dto.UnitConflict{
					Type:     appErrors.ErrWindowExhausted.Code,
					CourseID: unit.Course.ID,
					GroupID:  unit.Group.ID,
					Message:  "no class-derived exam time available",
				})
				continue
			}
			placements = append(placements, s.placeUnit(ctx, gen, workload, unit, dates[p], span[0], span[1], false)...)
		}
	}
	return placements, nil
}

// placeUnit resolves the room for one unit. A unit without a feasible
// room is never dropped: the request stays pending with a warning.
// Written units of the social policy additionally defer to a later date
// keeping the class room and hour when the room is taken.
func (s *CalendarGeneratorService) placeUnit(ctx context.Context, gen *generation, workload *Workload, unit ExamUnit, date time.Time, start, end models.ClockTime, deferWritten bool) []placement {
	item := placement{unit: unit, date: date, start: start, end: end}

	if unit.Course.Mode() == models.ExamModeWritten {
		room, ok := gen.picker.PickClassRoom(unit.Primary.RoomID, date, start, end, unit.Group.Headcount)
		if !ok && deferWritten && unit.Primary.RoomID != "" {
			if laterDate, laterRoom, found := s.deferToClassRoom(ctx, gen, unit.Primary.RoomID, date, start, end); found {
				item.date = laterDate
				room, ok = laterRoom, true
			}
		}
		if !ok {
			item.roomWarning = fmt.Sprintf("no classroom free for course %s group %s on %s at %s; room left pending",
				unit.Course.ID, unit.Group.ID, date.Format("2006-01-02"), start)
		} else {
			item.room = room
		}
	} else {
		room, ok := gen.picker.PickLab(workload.LabHistory, date, start, end, unit.Group.Headcount)
		if !ok {
			item.roomWarning = fmt.Sprintf("no computer lab free for course %s group %s on %s at %s; room left pending",
				unit.Course.ID, unit.Group.ID, date.Format("2006-01-02"), start)
		} else {
			item.room = room
		}
	}

	if item.room != nil {
		gen.board.ReserveRoom(item.date, item.room.ID, start, end, "")
	}
	return []placement{item}
}

// maxDeferralProbes bounds the forward walk when a group's class room
// is taken on its scheduled date.
const maxDeferralProbes = 30

// deferToClassRoom walks forward from the taken date to the first
// eligible day where the class room is free at the same hour,
// extending the window when the walk crosses its end.
func (s *CalendarGeneratorService) deferToClassRoom(ctx context.Context, gen *generation, roomID string, after time.Time, start, end models.ClockTime) (time.Time, *models.Room, bool) {
	room := gen.picker.findRoom(roomID)
	if room == nil || room.Disabled {
		return time.Time{}, nil, false
	}
	extend := s.extender(ctx, gen)
	cursor := dateOnly(after)
	for probe := 0; probe < maxDeferralProbes; probe++ {
		cursor = gen.allocator.nextEligibleAfter(cursor)
		if cursor.After(dateOnly(gen.window.LastDate)) {
			if err := extend(cursor); err != nil {
				return time.Time{}, nil, false
			}
			if cursor.After(dateOnly(gen.window.LastDate)) {
				return time.Time{}, nil, false
			}
		}
		if gen.board.RoomFree(cursor, roomID, start, end) {
			return cursor, room, true
		}
	}
	return time.Time{}, nil, false
}

// persist writes placements in the staged order: request, group link,
// room assignment with invigilator, jury. A unit whose invigilator
// search fails is unwound and reported.
func (s *CalendarGeneratorService) persist(ctx context.Context, gen *generation, workload *Workload, periodID, evaluationID string, placements []placement) error {
	courseStaffCache := make(map[string]map[string]bool)

	for _, item := range placements {
		request := &models.ExamRequest{
			ID:           repository.NewExamRequestID(periodID, evaluationID, item.unit.Course.ID),
			PeriodID:     periodID,
			EvaluationID: evaluationID,
			CourseID:     item.unit.Course.ID,
			ExamDate:     item.date,
			StartTime:    item.start,
			EndTime:      item.end,
			Status:       models.ExamStatusPending,
		}
		if err := s.exams.Create(ctx, gen.tx, request); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert exam request")
		}

		group := &models.ExamGroup{
			ID:            repository.NewExamGroupID(request.ID, item.unit.Group.ID),
			ExamRequestID: request.ID,
			GroupID:       item.unit.Group.ID,
		}
		if err := s.exams.CreateGroup(ctx, gen.tx, group); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert exam group")
		}

		if item.room == nil {
			gen.warnings = append(gen.warnings, item.roomWarning)
			gen.created++
			continue
		}

		invigilatorID, ok := s.pickInvigilator(gen, item)
		if !ok {
			if err := s.exams.Delete(ctx, gen.tx, request.ID); err != nil {
				return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unwind exam request")
			}
			gen.conflicts = append(gen.conflicts, dto.UnitConflict{
				Type:     appErrors.ErrNoInvigilatorFree.Code,
				CourseID: item.unit.Course.ID,
				GroupID:  item.unit.Group.ID,
				Message:  fmt.Sprintf("no invigilator free on %s at %s", item.date.Format("2006-01-02"), item.start),
			})
			continue
		}

		assignment := &models.RoomAssignment{
			ID:                   repository.NewRoomAssignmentID(request.ID, item.room.ID),
			ExamRequestID:        request.ID,
			RoomID:               item.room.ID,
			InvigilatorTeacherID: invigilatorID,
		}
		if err := s.exams.CreateRoomAssignment(ctx, gen.tx, assignment); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert room assignment")
		}
		gen.board.ReserveInvigilator(item.date, invigilatorID, item.start, item.end)

		if err := s.assignJury(ctx, gen, courseStaffCache, request, item); err != nil {
			return err
		}
		gen.created++
	}
	return nil
}

// pickInvigilator prefers the class teacher, then the first active
// teacher free at the slot.
func (s *CalendarGeneratorService) pickInvigilator(gen *generation, item placement) (string, bool) {
	preferred := item.unit.Primary.TeacherID
	if preferred != "" && gen.board.InvigilatorFree(item.date, preferred, item.start, item.end) {
		return preferred, true
	}
	for _, teacher := range gen.teachers {
		if gen.board.InvigilatorFree(item.date, teacher.ID, item.start, item.end) {
			return teacher.ID, true
		}
	}
	return "", false
}

// assignJury adds a jury member when the course has permission holders.
// Jury absence is never an error.
func (s *CalendarGeneratorService) assignJury(ctx context.Context, gen *generation, staffCache map[string]map[string]bool, request *models.ExamRequest, item placement) error {
	permissions, err := s.juries.ListPermissionsByCourse(ctx, item.unit.Course.ID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load jury permissions")
	}
	if len(permissions) == 0 {
		return nil
	}

	staff, cached := staffCache[item.unit.Course.ID]
	if !cached {
		teacherIDs, err := s.courseStaff.ListTeacherIDsForCourse(ctx, item.unit.Course.ID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course staff")
		}
		staff = make(map[string]bool, len(teacherIDs))
		for _, id := range teacherIDs {
			staff[id] = true
		}
		staffCache[item.unit.Course.ID] = staff
	}

	for _, permission := range permissions {
		if staff[permission.TeacherID] {
			continue
		}
		if gen.board.JuryLoad(permission.TeacherID) >= s.cfg.MaxJuryLoad {
			continue
		}
		if !gen.board.JuryFree(item.date, permission.TeacherID, item.start, item.end) {
			continue
		}

		assignment := &models.JuryAssignment{
			ID:            repository.NewJuryAssignmentID(request.ID, permission.TeacherID),
			ExamRequestID: request.ID,
			TeacherID:     permission.TeacherID,
		}
		if err := s.juries.CreateAssignment(ctx, gen.tx, assignment); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert jury assignment")
		}
		gen.board.ReserveJury(item.date, permission.TeacherID, item.start, item.end)
		return nil
	}
	return nil
}

func (s *CalendarGeneratorService) extender(ctx context.Context, gen *generation) func(time.Time) error {
	return func(needed time.Time) error {
		return s.windows.ExtendIfNeeded(ctx, gen.tx, gen.window, needed)
	}
}

func parseHolidays(raw []string) ([]time.Time, error) {
	holidays := make([]time.Time, 0, len(raw))
	for _, value := range raw {
		day, err := time.ParseInLocation("2006-01-02", value, time.UTC)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("holiday %q must be an ISO date", value))
		}
		holidays = append(holidays, day)
	}
	return holidays, nil
}

func unitsByGroup(units []ExamUnit) map[string][]ExamUnit {
	result := make(map[string][]ExamUnit)
	for _, unit := range units {
		result[unit.Group.ID] = append(result[unit.Group.ID], unit)
	}
	for _, list := range result {
		sort.Slice(list, func(i, j int) bool { return list[i].Course.ID < list[j].Course.ID })
	}
	return result
}

func sortedGroupIDs(byGroup map[string][]ExamUnit) []string {
	ids := make([]string, 0, len(byGroup))
	for id := range byGroup {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
