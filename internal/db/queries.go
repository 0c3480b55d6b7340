package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Role of a user within a font project.
const (
	RoleOwner  = "owner"
	RoleEditor = "editor"
)

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

type FontProject struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProjectMember struct {
	ProjectID string
	UserID    string
	Role      string
}

type Snapshot struct {
	ID        string
	ProjectID string
	Version   int32
	Document  []byte
	CreatedAt time.Time
}

// Queries is the hand-rolled query layer over the connection pool.
type Queries struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

// --- Users ---

type CreateUserParams struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
}

func (q *Queries) CreateUser(ctx context.Context, p CreateUserParams) (User, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password, display_name, created_at`,
		p.ID, p.Email, p.Password, p.DisplayName)
	return scanUser(row)
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (q *Queries) GetUser(ctx context.Context, id string) (User, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

// --- Font projects ---

type CreateProjectParams struct {
	ID      string
	Name    string
	OwnerID string
}

func (q *Queries) CreateProject(ctx context.Context, p CreateProjectParams) (FontProject, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO font_projects (id, name, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, owner_id, created_at, updated_at`,
		p.ID, p.Name, p.OwnerID)
	return scanProject(row)
}

func (q *Queries) GetProject(ctx context.Context, id string) (FontProject, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT id, name, owner_id, created_at, updated_at
		FROM font_projects WHERE id = $1`, id)
	return scanProject(row)
}

func (q *Queries) ListProjectsForUser(ctx context.Context, userID string) ([]FontProject, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT p.id, p.name, p.owner_id, p.created_at, p.updated_at
		FROM font_projects p
		JOIN project_members m ON m.project_id = p.id
		WHERE m.user_id = $1
		ORDER BY p.updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FontProject
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (q *Queries) DeleteProject(ctx context.Context, id string) error {
	_, err := q.pool.Exec(ctx, `DELETE FROM font_projects WHERE id = $1`, id)
	return err
}

func (q *Queries) RenameProject(ctx context.Context, id, name string) error {
	_, err := q.pool.Exec(ctx, `
		UPDATE font_projects SET name = $2, updated_at = now() WHERE id = $1`, id, name)
	return err
}

func scanProject(row pgx.Row) (FontProject, error) {
	var p FontProject
	err := row.Scan(&p.ID, &p.Name, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// --- Membership ---

type AddProjectMemberParams struct {
	ProjectID string
	UserID    string
	Role      string
}

func (q *Queries) AddProjectMember(ctx context.Context, p AddProjectMemberParams) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id, user_id) DO NOTHING`,
		p.ProjectID, p.UserID, p.Role)
	return err
}

type GetProjectMemberParams struct {
	ProjectID string
	UserID    string
}

func (q *Queries) GetProjectMember(ctx context.Context, p GetProjectMemberParams) (ProjectMember, error) {
	var m ProjectMember
	err := q.pool.QueryRow(ctx, `
		SELECT project_id, user_id, role
		FROM project_members WHERE project_id = $1 AND user_id = $2`,
		p.ProjectID, p.UserID).Scan(&m.ProjectID, &m.UserID, &m.Role)
	return m, err
}

type MemberRow struct {
	UserID      string
	Role        string
	DisplayName string
	Email       string
}

func (q *Queries) ListProjectMembers(ctx context.Context, projectID string) ([]MemberRow, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT m.user_id, m.role, u.display_name, u.email
		FROM project_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.project_id = $1
		ORDER BY u.display_name`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MemberRow
	for rows.Next() {
		var m MemberRow
		if err := rows.Scan(&m.UserID, &m.Role, &m.DisplayName, &m.Email); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type RemoveProjectMemberParams struct {
	ProjectID string
	UserID    string
}

func (q *Queries) RemoveProjectMember(ctx context.Context, p RemoveProjectMemberParams) error {
	_, err := q.pool.Exec(ctx, `
		DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`,
		p.ProjectID, p.UserID)
	return err
}

// --- Snapshots ---

type CreateSnapshotParams struct {
	ID        string
	ProjectID string
	Version   int32
	Document  []byte
}

func (q *Queries) CreateSnapshot(ctx context.Context, p CreateSnapshotParams) (Snapshot, error) {
	row := q.pool.QueryRow(ctx, `
		INSERT INTO snapshots (id, project_id, version, document)
		VALUES ($1, $2, $3, $4)
		RETURNING id, project_id, version, document, created_at`,
		p.ID, p.ProjectID, p.Version, p.Document)
	return scanSnapshot(row)
}

func (q *Queries) GetLatestSnapshot(ctx context.Context, projectID string) (Snapshot, error) {
	row := q.pool.QueryRow(ctx, `
		SELECT id, project_id, version, document, created_at
		FROM snapshots WHERE project_id = $1
		ORDER BY version DESC LIMIT 1`, projectID)
	return scanSnapshot(row)
}

func scanSnapshot(row pgx.Row) (Snapshot, error) {
	var s Snapshot
	err := row.Scan(&s.ID, &s.ProjectID, &s.Version, &s.Document, &s.CreatedAt)
	return s, err
}
