package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"stima/internal/core"
	"stima/internal/export"
	"stima/internal/storage"
)

// projectView carries the editable config fields into the page template.
type projectView struct {
	ProjectName    string
	DurationMonths int
	PricingModel   string
	HourlyRate     float64
	HoursPerDay    float64
	DailyRate      float64
	DaysPerMonth   float64
	FixedMonthly   float64
}

// resultsView is the fully formatted recomputation result. Templates only
// print it; every figure is already rendered by the core currency formatter.
type resultsView struct {
	ProjectDuration  int
	MonthlyRevenue   string
	TotalRevenue     string
	TotalCost        string
	NetValue         string
	NetNegative      bool
	CostPercent      string
	CostBarWidth     int // clamped at 100 for the progress bar only
	CostOverRevenue  bool
	AllocatedPercent string
	Members          []memberRowView
	Breakdown        []breakdownRowView
}

type memberRowView struct {
	Index             int
	Name              string
	Role              string
	EmploymentType    string
	ShareType         string
	ShareValue        float64
	DurationMonths    int
	EffectiveDuration int
	MonthlyPayout     string
	TotalPayout       string
}

type breakdownRowView struct {
	Label         string
	GrossRevenue  string
	TeamCost      string
	ReferralCost  string
	TotalCost     string
	NetIncome     string
	NetNegative   bool
	CumulativeNet string
}

func buildProjectView(cfg core.ProjectConfig) projectView {
	return projectView{
		ProjectName:    cfg.ProjectName,
		DurationMonths: cfg.DurationMonths,
		PricingModel:   string(cfg.PricingModel),
		HourlyRate:     cfg.HourlyRate,
		HoursPerDay:    cfg.HoursPerDay,
		DailyRate:      cfg.DailyRate,
		DaysPerMonth:   cfg.DaysPerMonth,
		FixedMonthly:   cfg.FixedMonthly,
	}
}

// buildResultsView runs the full pipeline over the snapshot and formats it.
func buildResultsView(snap storage.Snapshot) resultsView {
	agg := core.ComputeProject(snap.Config, snap.Members)
	rows := core.GenerateBreakdown(agg)

	view := resultsView{
		ProjectDuration: agg.ProjectDuration,
		MonthlyRevenue:  core.FormatCurrency(agg.MonthlyRevenue),
		TotalRevenue:    core.FormatCurrency(agg.TotalRevenue),
		TotalCost:       core.FormatCurrency(agg.TotalCost),
		NetValue:        core.FormatCurrency(agg.NetValue),
		NetNegative:     agg.NetValue < 0,
		// The raw ratio is printed as-is; only the bar width is capped.
		CostPercent:      strconv.FormatFloat(agg.CostPercentOfRevenue, 'f', 1, 64),
		CostOverRevenue:  agg.CostPercentOfRevenue > 100,
		AllocatedPercent: strconv.FormatFloat(agg.TotalAllocatedPercent, 'f', 1, 64),
	}

	width := int(agg.CostPercentOfRevenue)
	if width > 100 {
		width = 100
	}
	if width < 0 {
		width = 0
	}
	view.CostBarWidth = width

	for i, stats := range agg.Members {
		m := stats.Member
		view.Members = append(view.Members, memberRowView{
			Index:             i,
			Name:              m.Name,
			Role:              m.Role,
			EmploymentType:    string(m.EmploymentType),
			ShareType:         string(m.ShareType),
			ShareValue:        m.ShareValue,
			DurationMonths:    m.DurationMonths,
			EffectiveDuration: stats.EffectiveDuration,
			MonthlyPayout:     core.FormatCurrency(stats.MonthlyPayout),
			TotalPayout:       core.FormatCurrency(stats.TotalPayout),
		})
	}

	for _, row := range rows {
		view.Breakdown = append(view.Breakdown, breakdownRowView{
			Label:         fmt.Sprintf("Month %d", row.Month),
			GrossRevenue:  core.FormatCurrency(row.GrossRevenue),
			TeamCost:      core.FormatCurrency(row.TeamCost),
			ReferralCost:  core.FormatCurrency(row.ReferralCost),
			TotalCost:     core.FormatCurrency(row.TeamCost + row.ReferralCost),
			NetIncome:     core.FormatCurrency(row.NetIncome),
			NetNegative:   row.NetIncome < 0,
			CumulativeNet: core.FormatCurrency(row.CumulativeNet),
		})
	}

	return view
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	snap, err := s.estimates.Load(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Estimate load error", "error", err)
		http.Error(w, "failed to load estimate", http.StatusInternalServerError)
		return
	}

	data := struct {
		Project projectView
		Results resultsView
	}{
		Project: buildProjectView(snap.Config),
		Results: buildResultsView(snap),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleResults renders the recomputed results partial.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	snap, err := s.estimates.Load(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Estimate load error", "error", err)
		InternalServerError("Failed to load estimate").Write(w)
		return
	}
	s.renderResults(w, r, snap, nil)
}

// handleUpdateProject replaces the project configuration and recomputes.
func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	snap, err := s.estimates.Load(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Estimate load error", "error", err)
		InternalServerError("Failed to load estimate").Write(w)
		return
	}

	snap.Config = parseProjectForm(r.Form)
	version, err := s.estimates.Save(r.Context(), snap.Config, snap.Members)
	if err != nil {
		slog.ErrorContext(r.Context(), "Estimate save error", "error", err)
		InternalServerError("Failed to save estimate").Write(w)
		return
	}

	snap.Version = version
	s.renderResults(w, r, snap, &version)
}

// handleAddMember appends a roster entry with the default share and the
// project duration at creation time.
func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	snap, err := s.estimates.Load(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Estimate load error", "error", err)
		InternalServerError("Failed to load estimate").Write(w)
		return
	}

	snap.Members = append(snap.Members, core.DefaultMember(snap.Config.DurationMonths))
	version, err := s.estimates.Save(r.Context(), snap.Config, snap.Members)
	if err != nil {
		slog.ErrorContext(r.Context(), "Estimate save error", "error", err)
		InternalServerError("Failed to save estimate").Write(w)
		return
	}

	snap.Version = version
	s.renderResults(w, r, snap, &version)
}

// handleUpdateMember replaces the roster entry at the posted index.
func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	index, err := parseIndex(r.Form)
	if err != nil {
		UnprocessableEntityError("Invalid member index").Write(w)
		return
	}

	snap, err := s.estimates.Load(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Estimate load error", "error", err)
		InternalServerError("Failed to load estimate").Write(w)
		return
	}
	if index < 0 || index >= len(snap.Members) {
		UnprocessableEntityError("Invalid member index").Write(w)
		return
	}

	snap.Members[index] = parseMemberForm(r.Form)
	version, err := s.estimates.Save(r.Context(), snap.Config, snap.Members)
	if err != nil {
		slog.ErrorContext(r.Context(), "Estimate save error", "error", err)
		InternalServerError("Failed to save estimate").Write(w)
		return
	}

	snap.Version = version
	s.renderResults(w, r, snap, &version)
}

// handleRemoveMember removes the roster entry at the posted index.
func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, http.MethodDelete) {
		return
	}
	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid request format").Write(w)
		return
	}

	index, err := parseIndex(r.Form)
	if err != nil {
		UnprocessableEntityError("Invalid member index").Write(w)
		return
	}

	version, err := s.estimates.RemoveMember(r.Context(), index)
	if err == core.ErrInvalidIndex {
		UnprocessableEntityError("Invalid member index").Write(w)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Member removal error", "error", err, "index", index)
		InternalServerError("Failed to remove member").Write(w)
		return
	}

	snap, err := s.estimates.Load(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Estimate load error", "error", err)
		InternalServerError("Failed to load estimate").Write(w)
		return
	}
	s.renderResults(w, r, snap, &version)
}

// handleExport serializes one consistent snapshot into the styled workbook.
// The aggregate is computed once and passed to the formatter untouched.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	snap, err := s.estimates.Load(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Estimate load error", "error", err)
		ExportUnavailableError("Export is unavailable, please retry").Write(w)
		return
	}

	agg := core.ComputeProject(snap.Config, snap.Members)
	doc := export.BuildDocument(agg, snap.Config)

	var buf bytes.Buffer
	if err := export.Write(doc, &buf); err != nil {
		slog.ErrorContext(r.Context(), "Export write error", "error", err)
		ExportUnavailableError("Export is unavailable, please retry").Write(w)
		return
	}

	filename := export.Filename(time.Now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())

	slog.InfoContext(r.Context(), "Estimate exported",
		"filename", filename,
		"version", snap.Version,
		"bytes", buf.Len())
}

// renderResults executes the results partial, tagging the response with the
// new snapshot version when a mutation produced one.
func (s *Server) renderResults(w http.ResponseWriter, r *http.Request, snap storage.Snapshot, version *int64) {
	if s.templates == nil {
		InternalServerError("Templates not loaded").Write(w)
		return
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "results.html", buildResultsView(snap)); err != nil {
		slog.ErrorContext(r.Context(), "Results template execution failed", "error", err)
		InternalServerError("Failed to render results").Write(w)
		return
	}

	resp := NewHTMXResponse().BodyHTML(buf.String())
	if version != nil {
		resp.TriggerEstimateUpdated(*version)
	}
	resp.Write(w)
}
