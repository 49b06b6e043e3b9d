package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"issuedeck-cli/internal/api"
	"issuedeck-cli/internal/cache"
	"issuedeck-cli/internal/filters"
	"issuedeck-cli/internal/model"
	"issuedeck-cli/internal/query"
	"issuedeck-cli/internal/session"
	"issuedeck-cli/internal/taxonomy"
	"issuedeck-cli/internal/view"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeList mode = iota
	modeDetail
	modeAdmin
	modeLogin
)

// fetchTimeout bounds every background request so a dead server can't leave
// the UI loading forever.
const fetchTimeout = 15 * time.Second

var adminKinds = []api.TaxonomyKind{api.KindTags, api.KindStatuses, api.KindPriorities}

type appModel struct {
	sess         *session.Store
	client       *api.Client
	snap         *cache.Cache
	defaultLimit int

	width  int
	height int
	mode   mode
	status string

	issues   *view.Controller[model.Issue, api.IssueInput]
	issueSel int
	lookups  filters.Lookups

	current      *model.Issue
	comments     *view.Controller[model.Comment, string]
	commentInput textinput.Model

	admins       map[api.TaxonomyKind]*taxonomy.Admin
	adminKindIdx int
	adminSel     int
	confirming   bool
	confirmFocus confirmModalFocus

	loginEmail    textinput.Model
	loginPassword textinput.Model
	loginFocus    int

	spin spinner.Model
}

// Messages. Controllers apply their own results; these mostly trigger a
// re-render and carry side-channel info the model needs.
type (
	issuesLoadedMsg   struct{ applied bool }
	commentsLoadedMsg struct{ applied bool }
	lookupsLoadedMsg  struct {
		lk  filters.Lookups
		err error
	}
	adminRefreshedMsg struct {
		kind api.TaxonomyKind
		err  error
	}
	adminDeletedMsg struct {
		kind api.TaxonomyKind
		err  error
	}
	loginDoneMsg struct {
		res api.Session
		err error
	}
	actionDoneMsg struct{ err error }
)

func newAppModel(sess *session.Store, client *api.Client, snap *cache.Cache, defaultLimit int) *appModel {
	m := &appModel{
		sess:         sess,
		client:       client,
		snap:         snap,
		defaultLimit: defaultLimit,
		admins:       map[api.TaxonomyKind]*taxonomy.Admin{},
	}

	m.issues = view.New(sess, view.Ops[model.Issue, api.IssueInput]{
		Fetch:  client.ListIssues,
		Create: client.CreateIssue,
		Update: client.UpdateIssue,
		Delete: client.DeleteIssue,
	}, query.Default(defaultLimit))

	for _, kind := range adminKinds {
		m.admins[kind] = taxonomy.NewAdmin(sess, client.Taxonomy(kind))
	}

	m.commentInput = textinput.New()
	m.commentInput.Placeholder = "Add a comment (markdown)"
	m.commentInput.CharLimit = 2000

	m.loginEmail = textinput.New()
	m.loginEmail.Placeholder = "email"
	m.loginPassword = textinput.New()
	m.loginPassword.Placeholder = "password"
	m.loginPassword.EchoMode = textinput.EchoPassword

	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot))

	m.restoreSnapshot()
	return m
}

// restoreSnapshot pre-fills the issue list and filter lookups from the local
// SQLite snapshot so the first frame isn't empty. The real fetch replaces it.
func (m *appModel) restoreSnapshot() {
	if m.snap == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if page, ok, err := cache.LoadPage[model.Issue](ctx, m.snap, "issues", m.issues.Query()); err == nil && ok {
		_, v := m.issues.Reload()
		m.issues.Apply(v, page, nil)
	}
	if tags, err := m.snap.LoadTaxonomy(ctx, string(api.KindTags)); err == nil {
		m.lookups.Tags = tags
	}
	if statuses, err := m.snap.LoadTaxonomy(ctx, string(api.KindStatuses)); err == nil {
		m.lookups.Statuses = statuses
	}
	if priorities, err := m.snap.LoadTaxonomy(ctx, string(api.KindPriorities)); err == nil {
		m.lookups.Priorities = priorities
	}
}

func (m *appModel) Init() tea.Cmd {
	q, v := m.issues.Reload()
	return tea.Batch(
		m.spin.Tick,
		m.fetchIssuesCmd(q, v),
		m.fetchLookupsCmd(),
	)
}

func (m *appModel) fetchIssuesCmd(q query.State, version uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		applied := m.issues.Load(ctx, q, version)
		if applied && m.issues.Err() == nil && m.snap != nil {
			_ = cache.SavePage(ctx, m.snap, "issues", q, m.issues.Page())
		}
		return issuesLoadedMsg{applied: applied}
	}
}

func (m *appModel) fetchCommentsCmd(q query.State, version uint64) tea.Cmd {
	ctrl := m.comments
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		applied := ctrl.Load(ctx, q, version)
		return commentsLoadedMsg{applied: applied}
	}
}

func (m *appModel) fetchLookupsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		var lk filters.Lookups
		var err error
		if lk.Statuses, err = m.client.Taxonomy(api.KindStatuses).List(ctx); err != nil {
			return lookupsLoadedMsg{err: err}
		}
		if lk.Priorities, err = m.client.Taxonomy(api.KindPriorities).List(ctx); err != nil {
			return lookupsLoadedMsg{err: err}
		}
		if lk.Tags, err = m.client.Taxonomy(api.KindTags).List(ctx); err != nil {
			return lookupsLoadedMsg{err: err}
		}
		// The user directory may be gated; chips fall back to raw ids.
		lk.Users, _ = m.client.ListUsers(ctx)

		if m.snap != nil {
			_ = m.snap.SaveTaxonomy(ctx, string(api.KindStatuses), lk.Statuses)
			_ = m.snap.SaveTaxonomy(ctx, string(api.KindPriorities), lk.Priorities)
			_ = m.snap.SaveTaxonomy(ctx, string(api.KindTags), lk.Tags)
		}
		return lookupsLoadedMsg{lk: lk}
	}
}

func (m *appModel) refreshAdminCmd(kind api.TaxonomyKind) tea.Cmd {
	admin := m.admins[kind]
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return adminRefreshedMsg{kind: kind, err: admin.Refresh(ctx)}
	}
}

func (m *appModel) confirmDeleteCmd(kind api.TaxonomyKind) tea.Cmd {
	admin := m.admins[kind]
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return adminDeletedMsg{kind: kind, err: admin.ConfirmDelete(ctx)}
	}
}

func (m *appModel) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		res, err := m.client.Login(ctx, email, password)
		return loginDoneMsg{res: res, err: err}
	}
}

func (m *appModel) addCommentCmd(content string) tea.Cmd {
	ctrl := m.comments
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		_, err := ctrl.Create(ctx, content)
		return actionDoneMsg{err: err}
	}
}

func (m *appModel) openDetail(issue model.Issue) tea.Cmd {
	m.current = &issue
	issueID := issue.ID
	m.comments = view.New(m.sess, view.Ops[model.Comment, string]{
		Fetch: func(ctx context.Context, q query.State) (model.Page[model.Comment], error) {
			return m.client.ListComments(ctx, issueID, q)
		},
		Create: func(ctx context.Context, content string) (model.Comment, error) {
			return m.client.CreateComment(ctx, issueID, content)
		},
		Update: func(ctx context.Context, id int, content string) (model.Comment, error) {
			return m.client.UpdateComment(ctx, id, content)
		},
		Delete: m.client.DeleteComment,
	}, query.Default(m.defaultLimit)).WithOptimisticAppend()
	m.commentInput.SetValue("")
	m.mode = modeDetail

	q, v := m.comments.Reload()
	return m.fetchCommentsCmd(q, v)
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case issuesLoadedMsg:
		m.clampIssueSel()
		return m, nil

	case commentsLoadedMsg:
		return m, nil

	case lookupsLoadedMsg:
		if msg.err == nil {
			m.lookups = msg.lk
		}
		return m, nil

	case adminRefreshedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		m.clampAdminSel()
		return m, nil

	case adminDeletedMsg:
		m.confirming = false
		if msg.err != nil {
			// Conflict details render from admin.Conflict(); other errors go
			// to the status line.
			if _, ok := api.AsConflict(msg.err); !ok {
				m.status = msg.err.Error()
			}
		} else {
			m.status = "deleted"
		}
		m.clampAdminSel()
		return m, nil

	case loginDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		if err := m.sess.Login(msg.res.User, msg.res.AccessToken); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = "logged in as " + msg.res.User.Name
		m.mode = modeList
		q, v := m.issues.Reload()
		return m, m.fetchIssuesCmd(q, v)

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case modeLogin:
		return m.handleLoginKey(msg)
	case modeDetail:
		return m.handleDetailKey(msg)
	case modeAdmin:
		return m.handleAdminKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *appModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		m.issueSel++
		m.clampIssueSel()
	case "k", "up":
		m.issueSel--
		m.clampIssueSel()
	case "enter":
		page := m.issues.Page()
		if m.issueSel < len(page.Data) {
			return m, m.openDetail(page.Data[m.issueSel])
		}
	case "r":
		q, v := m.issues.Reload()
		return m, m.fetchIssuesCmd(q, v)
	case "n":
		q := m.issues.Query()
		if q.HasNext(m.issues.Page().TotalCount) {
			nav, v := m.issues.Navigate(q.Next())
			return m, m.fetchIssuesCmd(nav, v)
		}
	case "p":
		q := m.issues.Query()
		if q.HasPrev() {
			nav, v := m.issues.Navigate(q.Prev())
			return m, m.fetchIssuesCmd(nav, v)
		}
	case "s":
		// Cycle the status filter through the known statuses, then off.
		nav, v := m.issues.SetQuery(map[string]string{query.KeyStatus: m.nextStatusFilter()})
		return m, m.fetchIssuesCmd(nav, v)
	case "x":
		nav, v := m.issues.Navigate(filters.ClearAll(m.defaultLimit))
		return m, m.fetchIssuesCmd(nav, v)
	case "a":
		if m.sess.Principal() != nil && m.sess.Principal().IsAdmin() {
			m.mode = modeAdmin
			m.adminSel = 0
			return m, m.refreshAdminCmd(adminKinds[m.adminKindIdx])
		}
		m.status = "admin role required"
	case "L":
		m.mode = modeLogin
		m.loginFocus = 0
		m.loginEmail.Focus()
		m.loginPassword.Blur()
	}
	return m, nil
}

// nextStatusFilter returns the value for the status filter one step further
// in the cycle: first status, next status, ..., "" (off).
func (m *appModel) nextStatusFilter() string {
	statuses := m.lookups.Statuses
	if len(statuses) == 0 {
		return ""
	}
	current, ok := m.issues.Query().StatusID()
	if !ok {
		return strconv.Itoa(statuses[0].ID)
	}
	for i, s := range statuses {
		if s.ID == current {
			if i+1 < len(statuses) {
				return strconv.Itoa(statuses[i+1].ID)
			}
			return ""
		}
	}
	return strconv.Itoa(statuses[0].ID)
}

func (m *appModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.commentInput.Focused() {
		switch msg.String() {
		case "esc":
			m.commentInput.Blur()
			return m, nil
		case "enter":
			content := strings.TrimSpace(m.commentInput.Value())
			m.commentInput.SetValue("")
			m.commentInput.Blur()
			if content == "" {
				return m, nil
			}
			return m, m.addCommentCmd(content)
		}
		var cmd tea.Cmd
		m.commentInput, cmd = m.commentInput.Update(msg)
		return m, cmd
	}

	m.status = ""
	switch msg.String() {
	case "q", "esc":
		m.mode = modeList
		m.current = nil
		m.comments = nil
	case "c":
		m.commentInput.Focus()
	case "n":
		q := m.comments.Query()
		if q.HasNext(m.comments.Page().TotalCount) {
			nav, v := m.comments.Navigate(q.Next())
			return m, m.fetchCommentsCmd(nav, v)
		}
	case "p":
		q := m.comments.Query()
		if q.HasPrev() {
			nav, v := m.comments.Navigate(q.Prev())
			return m, m.fetchCommentsCmd(nav, v)
		}
	case "r":
		q, v := m.comments.Reload()
		return m, m.fetchCommentsCmd(q, v)
	}
	return m, nil
}

func (m *appModel) handleAdminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind := adminKinds[m.adminKindIdx]
	admin := m.admins[kind]

	if m.confirming {
		switch msg.String() {
		case "tab":
			if m.confirmFocus == confirmFocusConfirm {
				m.confirmFocus = confirmFocusCancel
			} else {
				m.confirmFocus = confirmFocusConfirm
			}
		case "enter":
			if m.confirmFocus == confirmFocusConfirm {
				return m, m.confirmDeleteCmd(kind)
			}
			m.confirming = false
			admin.CancelDelete()
		case "esc":
			m.confirming = false
			admin.CancelDelete()
		}
		return m, nil
	}

	m.status = ""
	switch msg.String() {
	case "q", "esc":
		m.mode = modeList
	case "tab":
		m.adminKindIdx = (m.adminKindIdx + 1) % len(adminKinds)
		m.adminSel = 0
		return m, m.refreshAdminCmd(adminKinds[m.adminKindIdx])
	case "j", "down":
		m.adminSel++
		m.clampAdminSel()
	case "k", "up":
		m.adminSel--
		m.clampAdminSel()
	case "r":
		return m, m.refreshAdminCmd(kind)
	case "d":
		entities := admin.Entities()
		if m.adminSel < len(entities) {
			if err := admin.RequestDelete(entities[m.adminSel].ID); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.confirming = true
			m.confirmFocus = confirmFocusCancel
		}
	}
	return m, nil
}

func (m *appModel) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		return m, nil
	case "tab":
		m.loginFocus = (m.loginFocus + 1) % 2
		if m.loginFocus == 0 {
			m.loginEmail.Focus()
			m.loginPassword.Blur()
		} else {
			m.loginEmail.Blur()
			m.loginPassword.Focus()
		}
		return m, nil
	case "enter":
		email := strings.TrimSpace(m.loginEmail.Value())
		password := m.loginPassword.Value()
		if email == "" || password == "" {
			m.status = "email and password are required"
			return m, nil
		}
		m.status = "logging in..."
		return m, m.loginCmd(email, password)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.loginEmail, cmd = m.loginEmail.Update(msg)
	} else {
		m.loginPassword, cmd = m.loginPassword.Update(msg)
	}
	return m, cmd
}

func (m *appModel) clampIssueSel() {
	n := len(m.issues.Page().Data)
	if m.issueSel >= n {
		m.issueSel = n - 1
	}
	if m.issueSel < 0 {
		m.issueSel = 0
	}
}

func (m *appModel) clampAdminSel() {
	n := len(m.admins[adminKinds[m.adminKindIdx]].Entities())
	if m.adminSel >= n {
		m.adminSel = n - 1
	}
	if m.adminSel < 0 {
		m.adminSel = 0
	}
}

func (m *appModel) View() string {
	switch m.mode {
	case modeLogin:
		return m.viewLogin()
	case modeDetail:
		return m.viewDetail()
	case modeAdmin:
		return m.viewAdmin()
	default:
		return m.viewList()
	}
}

func (m *appModel) viewHeader(title string) string {
	who := "anonymous"
	if p := m.sess.Principal(); p != nil {
		who = p.Name
		if p.IsAdmin() {
			who += " (admin)"
		}
	}
	left := lipgloss.NewStyle().Bold(true).Render(title)
	right := styleMuted().Render(who)
	return left + "  " + right
}

func (m *appModel) viewStatusLine() string {
	if m.status == "" {
		return ""
	}
	return styleError().Render(m.status)
}

func (m *appModel) viewList() string {
	var b strings.Builder
	b.WriteString(m.viewHeader("issuedeck"))
	b.WriteString("\n")

	chips := filters.Present(m.issues.Query(), m.lookups)
	if row := renderChips(chips); row != "" {
		b.WriteString(row)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	page := m.issues.Page()
	if m.issues.Phase() == view.PhaseLoading {
		b.WriteString(m.spin.View() + styleMuted().Render(" loading...") + "\n")
	}
	if err := m.issues.Err(); err != nil {
		b.WriteString(styleError().Render(err.Error()) + "\n")
	}

	selStyle := lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg)
	for i, issue := range page.Data {
		line := fmt.Sprintf("#%-4d %s", issue.ID, issue.Title)
		var meta []string
		if issue.Status != nil {
			meta = append(meta, issue.Status.Name)
		}
		if issue.Priority != nil {
			meta = append(meta, issue.Priority.Name)
		}
		if issue.Author != nil {
			meta = append(meta, "by "+issue.Author.Name)
		}
		if len(meta) > 0 {
			line += "  " + styleMuted().Render(strings.Join(meta, " · "))
		}
		line = truncateToWidth(line, m.width)
		if i == m.issueSel {
			line = selStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if len(page.Data) == 0 && m.issues.Phase() == view.PhaseReady {
		b.WriteString(styleMuted().Render("no issues match the current filters") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(styleMuted().Render(m.pageIndicator(m.issues.Query(), page.TotalCount)) + "\n")
	if s := m.viewStatusLine(); s != "" {
		b.WriteString(s + "\n")
	}
	b.WriteString(styleMuted().Render("enter: open  n/p: page  s: status filter  x: clear  a: admin  L: login  r: reload  q: quit"))
	return b.String()
}

func (m *appModel) pageIndicator(q query.State, total int) string {
	if total == 0 {
		return "0 results"
	}
	first := q.Skip + 1
	last := q.Skip + q.Limit
	if last > total {
		last = total
	}
	return fmt.Sprintf("%d-%d of %d", first, last, total)
}

func (m *appModel) viewDetail() string {
	if m.current == nil || m.comments == nil {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(m.viewHeader(fmt.Sprintf("issue #%d", m.current.ID)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.current.Title) + "\n")

	var meta []string
	if m.current.Status != nil {
		meta = append(meta, m.current.Status.Name)
	}
	if m.current.Priority != nil {
		meta = append(meta, m.current.Priority.Name)
	}
	for _, t := range m.current.Tags {
		meta = append(meta, "#"+t.Name)
	}
	if len(meta) > 0 {
		b.WriteString(styleMuted().Render(strings.Join(meta, " · ")) + "\n")
	}
	if md := renderMarkdown(m.current.Description, width-2); md != "" {
		b.WriteString("\n" + md + "\n")
	}

	b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("Comments") + "\n")
	page := m.comments.Page()
	if m.comments.Phase() == view.PhaseLoading {
		b.WriteString(m.spin.View() + styleMuted().Render(" loading...") + "\n")
	}
	if err := m.comments.Err(); err != nil {
		b.WriteString(styleError().Render(err.Error()) + "\n")
	}
	for _, c := range page.Data {
		author := "unknown"
		if c.Author != nil {
			author = c.Author.Name
		}
		b.WriteString(styleMuted().Render(author) + "\n")
		b.WriteString(renderMarkdown(c.Content, width-4) + "\n")
	}
	b.WriteString(styleMuted().Render(m.pageIndicator(m.comments.Query(), page.TotalCount)) + "\n")

	b.WriteString("\n" + m.commentInput.View() + "\n")
	if s := m.viewStatusLine(); s != "" {
		b.WriteString(s + "\n")
	}
	b.WriteString(styleMuted().Render("c: comment  n/p: page  r: reload  esc: back"))
	return b.String()
}

func (m *appModel) viewAdmin() string {
	kind := adminKinds[m.adminKindIdx]
	admin := m.admins[kind]

	var b strings.Builder
	b.WriteString(m.viewHeader("admin: " + string(kind)))
	b.WriteString("\n\n")

	selStyle := lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg)
	entities := admin.Entities()
	for i, e := range entities {
		line := fmt.Sprintf("%-4d %s", e.ID, e.Name)
		if e.Color != "" {
			line += "  " + styleMuted().Render(e.Color)
		}
		line = truncateToWidth(line, m.width)
		if i == m.adminSel {
			line = selStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if len(entities) == 0 {
		b.WriteString(styleMuted().Render("empty") + "\n")
	}

	if c := admin.Conflict(); c != nil {
		b.WriteString("\n" + styleError().Render(fmt.Sprintf("cannot delete %q: still referenced by %d issue(s)", c.Entity.Name, len(c.Affected))) + "\n")
		for _, a := range c.Affected {
			b.WriteString(styleMuted().Render(fmt.Sprintf("  #%d %s", a.ID, a.Title)) + "\n")
		}
	}

	if m.confirming {
		if pending := admin.Pending(); pending != nil {
			width := m.width
			if width <= 0 {
				width = 80
			}
			b.WriteString("\n")
			b.WriteString(renderConfirmModal(width,
				"Delete "+singularKind(kind),
				fmt.Sprintf("Delete %q? This cannot be undone.", pending.Name),
				"Delete", "Cancel", m.confirmFocus))
			b.WriteString("\n")
		}
	}

	if s := m.viewStatusLine(); s != "" {
		b.WriteString("\n" + s + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("tab: switch kind  d: delete  r: reload  esc: back"))
	return b.String()
}

func (m *appModel) viewLogin() string {
	var b strings.Builder
	b.WriteString(m.viewHeader("log in"))
	b.WriteString("\n\n")
	b.WriteString(m.loginEmail.View() + "\n")
	b.WriteString(m.loginPassword.View() + "\n")
	if s := m.viewStatusLine(); s != "" {
		b.WriteString("\n" + s + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("tab: switch field  enter: log in  esc: back"))
	return b.String()
}

func singularKind(kind api.TaxonomyKind) string {
	switch kind {
	case api.KindTags:
		return "tag"
	case api.KindStatuses:
		return "status"
	case api.KindPriorities:
		return "priority"
	}
	return string(kind)
}
