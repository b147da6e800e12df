package repository

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ai-notebook.com/ai-notebook/internal/kv"
	model "ai-notebook.com/ai-notebook/internal/models"
)

const testUserID = "current-user"

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// stepClock advances one second on every reading.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type sequence struct {
	mu sync.Mutex
	n  int
}

func (s *sequence) Next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	if prefix == "" {
		prefix = "project"
	}
	return fmt.Sprintf("%s-%d", prefix, s.n)
}

type fixture struct {
	store    kv.Store
	clock    *stepClock
	projects *ProjectRepository
	tasks    *TaskRepository
	members  *MemberRepository
	todos    *TodoRepository
	notes    *NoteRepository
	chats    *ChatRepository

	templates *PromptTemplateRepository
}

func newFixture(t *testing.T, store kv.Store) *fixture {
	t.Helper()

	clock := &stepClock{t: baseTime}
	seq := &sequence{}
	opts := []Option{WithClock(clock.Now), WithIDGenerator(seq.Next)}

	tasks := NewTaskRepository(store, nil, opts...)
	projects := NewProjectRepository(store, tasks, testUserID, nil, opts...)
	return &fixture{
		store:    store,
		clock:    clock,
		projects: projects,
		tasks:    tasks,
		members:  NewMemberRepository(store, projects, tasks, nil, opts...),
		todos:    NewTodoRepository(store, nil, opts...),
		notes:    NewNoteRepository(store, nil, opts...),
		chats:    NewChatRepository(store, nil, opts...),

		templates: NewPromptTemplateRepository(store, nil, opts...),
	}
}

func newSQLiteStore(t *testing.T) kv.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, kv.MigrateSQLite(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return kv.NewSQLiteStore(db)
}

// backends runs fn once per KV backend the repositories are tested against.
func backends(t *testing.T, fn func(t *testing.T, f *fixture)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, newFixture(t, kv.NewMemoryStore()))
	})
	t.Run("sqlite", func(t *testing.T) {
		fn(t, newFixture(t, newSQLiteStore(t)))
	})
}

func ptr[T any](v T) *T {
	return &v
}

func projectIDs(projects []model.Project) []string {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids
}

func taskIDs(tasks []model.Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func newMemoryStore() kv.Store {
	return kv.NewMemoryStore()
}
