package server

import (
	"net/http"
	"time"

	"github.com/existflow/mandarina/internal/calendar"
	"github.com/existflow/mandarina/internal/model"
	"github.com/labstack/echo/v4"
)

type monthQuery struct {
	Year  int `query:"year" validate:"omitempty,min=1,max=9999"`
	Month int `query:"month" validate:"omitempty,min=1,max=12"`
}

// resolve fills an absent year or month from today
func (q monthQuery) resolve() (int, time.Month) {
	today := calendar.Today()
	if q.Year == 0 {
		q.Year = today.Year
	}
	if q.Month == 0 {
		q.Month = int(today.Month)
	}
	return q.Year, time.Month(q.Month)
}

type dateQuery struct {
	Date string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}

type hoursQuery struct {
	Format int `query:"format" validate:"omitempty,oneof=12 24"`
}

type createTaskRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high Low Medium High"`
}

type cellResponse struct {
	Date    calendar.Date `json:"date"`
	InMonth bool          `json:"in_month"`
	Tasks   int           `json:"tasks"`
}

type monthResponse struct {
	Year         int              `json:"year"`
	Month        int              `json:"month"`
	FirstWeekday string           `json:"first_weekday"`
	Pending      int              `json:"pending"`
	Total        int              `json:"total"`
	Weeks        [][]cellResponse `json:"weeks"`
}

type weekResponse struct {
	Date calendar.Date  `json:"date"`
	Days []cellResponse `json:"days"`
}

type hourResponse struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"`
}

// bind decodes and validates a request into v
func bind(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return err
	}
	return c.Validate(v)
}

// countByDate counts the owner's tasks per date between from and to
func (s *Server) countByDate(c echo.Context, from, to calendar.Date) (map[calendar.Date]int, error) {
	tasks, err := s.store.ListBetween(c.Request().Context(), s.cfg.UserID, from, to)
	if err != nil {
		return nil, err
	}
	counts := make(map[calendar.Date]int)
	for _, t := range tasks {
		counts[t.Date]++
	}
	return counts, nil
}

func toCells(row []calendar.Cell, counts map[calendar.Date]int) []cellResponse {
	cells := make([]cellResponse, len(row))
	for i, cell := range row {
		cells[i] = cellResponse{Date: cell.Date, InMonth: cell.InMonth, Tasks: counts[cell.Date]}
	}
	return cells
}

func (s *Server) handleMonth(c echo.Context) error {
	var q monthQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	year, month := q.resolve()
	first := s.cfg.Weekday()

	grid, err := calendar.MonthGrid(year, month, first)
	if err != nil {
		return err
	}
	from, _, _ := calendar.Span(grid[0])
	_, to, _ := calendar.Span(grid[len(grid)-1])
	counts, err := s.countByDate(c, from, to)
	if err != nil {
		return err
	}
	pending, total, err := s.store.CountByMonth(c.Request().Context(), s.cfg.UserID, year, month)
	if err != nil {
		return err
	}

	resp := monthResponse{
		Year:         year,
		Month:        int(month),
		FirstWeekday: first.Long(),
		Pending:      pending,
		Total:        total,
		Weeks:        make([][]cellResponse, len(grid)),
	}
	for i, row := range grid {
		resp.Weeks[i] = toCells(row, counts)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleWeek(c echo.Context) error {
	var q dateQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	date := calendar.Today()
	if q.Date != "" {
		d, err := calendar.ParseDate(q.Date)
		if err != nil {
			return err
		}
		date = d
	}

	week, err := calendar.WeekContaining(date.Year, date.Month, date.Day, s.cfg.Weekday())
	if err != nil {
		return err
	}
	from, to, _ := calendar.Span(week)
	counts, err := s.countByDate(c, from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, weekResponse{Date: date, Days: toCells(week, counts)})
}

func (s *Server) handleHours(c echo.Context) error {
	var q hoursQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	format := s.cfg.Format()
	if q.Format != 0 {
		format = calendar.HourFormat(q.Format)
	}

	slots := calendar.HourSlots()
	resp := make([]hourResponse, len(slots))
	for i, slot := range slots {
		resp[i] = hourResponse{Hour: slot.Hour, Label: slot.Label(format)}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleListTasks(c echo.Context) error {
	var q monthQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	year, month := q.resolve()

	tasks, err := s.store.ListByMonth(c.Request().Context(), s.cfg.UserID, year, month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return err
	}
	draft := model.Draft{
		Title:    req.Title,
		Content:  req.Content,
		Priority: model.PriorityLow,
		Date:     date,
		Hour:     9,
		OwnerID:  s.cfg.UserID,
	}
	if req.Time != "" {
		if draft.Hour, draft.Minute, err = calendar.ParseClock(req.Time); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	if req.Priority != "" {
		if draft.Priority, err = model.ParsePriority(req.Priority); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	task, err := s.store.Insert(c.Request().Context(), draft)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

func (s *Server) handleGetTask(c echo.Context) error {
	task, err := s.store.GetByPrefix(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleCompleteTask(c echo.Context) error {
	ctx := c.Request().Context()
	task, err := s.store.GetByPrefix(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	done, err := s.store.Complete(ctx, task.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, done)
}
