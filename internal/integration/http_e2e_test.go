//go:build integration || !unit

package integration

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivent/internal/adapters/auth"
	server "drivent/internal/adapters/http_server"
	redisad "drivent/internal/adapters/redis"
	"drivent/internal/app"
	mysqlrepo "drivent/internal/storage/mysql"
)

const jwtSecret = "e2e-secret"

// ---------- helpers ----------

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = filepath.Join("..", "..", "migrations")
	}
	ents, err := os.ReadDir(dir)
	require.NoError(t, err, "MIGRATIONS_DIR=%s", dir)

	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	require.NotEmpty(t, files, "no .sql files in %s", dir)
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		require.NoError(t, err)
		_, err = db.Exec(string(sqlBytes))
		require.NoError(t, err, "exec %s", f)
	}
}

type fixture struct {
	t   *testing.T
	db  *sql.DB
	mr  *miniredis.Miniredis
	ts  *httptest.Server
	seq int64
}

func newFixture(t *testing.T) *fixture {
	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env:        []string{"MYSQL_ROOT_PASSWORD=root", "MYSQL_DATABASE=drivent"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/drivent?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))
	var db *sql.DB
	require.NoError(t, pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}))
	t.Cleanup(func() { _ = db.Close() })
	applyMigrations(t, db)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	repo := mysqlrepo.New(db)
	cache := redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	svc := app.NewHotelService(repo, repo, repo, cache, time.Minute)

	srv := server.New()
	srv.MountHandlers(&server.Handlers{Hotels: svc, Auth: auth.NewVerifier(jwtSecret, repo)})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)

	return &fixture{t: t, db: db, mr: mr, ts: ts}
}

// reset mirrors a clean database between cases.
func (f *fixture) reset() {
	f.t.Helper()
	for _, tbl := range []string{"rooms", "hotels", "tickets", "ticket_types", "addresses", "enrollments", "sessions", "users"} {
		_, err := f.db.Exec("DELETE FROM " + tbl)
		require.NoError(f.t, err)
	}
	f.mr.FlushAll()
}

func (f *fixture) exec(q string, args ...any) int64 {
	f.t.Helper()
	res, err := f.db.Exec(q, args...)
	require.NoError(f.t, err)
	id, err := res.LastInsertId()
	require.NoError(f.t, err)
	return id
}

// userWithSession creates a user and a session, returning the bearer token.
func (f *fixture) userWithSession() (int64, string) {
	f.t.Helper()
	f.seq++
	userID := f.exec("INSERT INTO users (email, password) VALUES (?, 'x')", fmt.Sprintf("u%d@driven.test", f.seq))
	tok, err := auth.Sign(jwtSecret, userID, 0)
	require.NoError(f.t, err)
	f.exec("INSERT INTO sessions (user_id, token) VALUES (?, ?)", userID, tok)
	return userID, tok
}

func (f *fixture) enrollment(userID int64) int64 {
	f.t.Helper()
	id := f.exec(`INSERT INTO enrollments (user_id, name, cpf, birthday, phone) VALUES (?, 'Ana', '12345678901', '1990-01-01', '21999999999')`, userID)
	f.exec(`INSERT INTO addresses (enrollment_id, cep, street, city, state, number, neighborhood) VALUES (?, '20000000', 'Rua A', 'Rio', 'RJ', '1', 'Centro')`, id)
	return id
}

func (f *fixture) ticket(enrollmentID int64, remote, hotel bool, status string) {
	f.t.Helper()
	typeID := f.exec("INSERT INTO ticket_types (name, price, is_remote, includes_hotel) VALUES ('tt', 500, ?, ?)", remote, hotel)
	f.exec("INSERT INTO tickets (ticket_type_id, enrollment_id, status) VALUES (?, ?, ?)", typeID, enrollmentID, status)
}

func (f *fixture) eligibleUser() string {
	userID, tok := f.userWithSession()
	f.ticket(f.enrollment(userID), false, true, "PAID")
	return tok
}

func (f *fixture) get(path, tok string) (*http.Response, []byte) {
	f.t.Helper()
	req, err := http.NewRequest(http.MethodGet, f.ts.URL+path, nil)
	require.NoError(f.t, err)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(f.t, err)
	defer res.Body.Close()
	var body json.RawMessage
	_ = json.NewDecoder(res.Body).Decode(&body)
	return res, body
}

// ---------- the test ----------

func TestHTTP_EndToEnd_Hotels(t *testing.T) {
	f := newFixture(t)
	routes := []string{"/hotels", "/hotels/1"}

	t.Run("401 without token, bad token, or missing session", func(t *testing.T) {
		f.reset()
		noSession, err := auth.Sign(jwtSecret, 12345, 0)
		require.NoError(t, err)
		for _, p := range routes {
			for _, tok := range []string{"", "lorem", noSession} {
				res, _ := f.get(p, tok)
				assert.Equal(t, http.StatusUnauthorized, res.StatusCode, p)
			}
		}
	})

	t.Run("404 without enrollment", func(t *testing.T) {
		f.reset()
		_, tok := f.userWithSession()
		for _, p := range routes {
			res, body := f.get(p, tok)
			assert.Equal(t, http.StatusNotFound, res.StatusCode, p)
			assert.JSONEq(t, `[]`, string(body))
		}
	})

	t.Run("404 without ticket", func(t *testing.T) {
		f.reset()
		userID, tok := f.userWithSession()
		f.enrollment(userID)
		for _, p := range routes {
			res, _ := f.get(p, tok)
			assert.Equal(t, http.StatusNotFound, res.StatusCode, p)
		}
	})

	paymentCases := []struct {
		name          string
		remote, hotel bool
		status        string
	}{
		{"remote event even when paid", true, false, "PAID"},
		{"hotel not included", false, false, "PAID"},
		{"ticket reserved", false, true, "RESERVED"},
	}
	for _, pc := range paymentCases {
		t.Run("402 "+pc.name, func(t *testing.T) {
			f.reset()
			userID, tok := f.userWithSession()
			f.ticket(f.enrollment(userID), pc.remote, pc.hotel, pc.status)
			for _, p := range routes {
				res, body := f.get(p, tok)
				assert.Equal(t, http.StatusPaymentRequired, res.StatusCode, p)
				assert.JSONEq(t, `[]`, string(body))
			}
		})
	}

	t.Run("empty catalog is 404 with empty array", func(t *testing.T) {
		f.reset()
		res, body := f.get("/hotels", f.eligibleUser())
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.JSONEq(t, `[]`, string(body))
	})

	t.Run("200 with hotel data", func(t *testing.T) {
		f.reset()
		tok := f.eligibleUser()
		hotelID := f.exec("INSERT INTO hotels (name, image, created_at, updated_at) VALUES ('Driven Resort', 'https://img/1.png', '2026-02-03 04:05:06.789', '2026-02-03 04:05:06.789')")

		res, body := f.get("/hotels", tok)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.JSONEq(t, fmt.Sprintf(`[{
			"id": %d,
			"name": "Driven Resort",
			"image": "https://img/1.png",
			"createdAt": "2026-02-03T04:05:06.789Z",
			"updatedAt": "2026-02-03T04:05:06.789Z"
		}]`, hotelID), string(body))
	})

	t.Run("rooms route", func(t *testing.T) {
		f.reset()
		tok := f.eligibleUser()
		withRooms := f.exec("INSERT INTO hotels (name, image) VALUES ('Driven Palace', 'https://img/2.png')")
		f.exec("INSERT INTO rooms (name, capacity, hotel_id) VALUES ('101', 2, ?)", withRooms)
		noRooms := f.exec("INSERT INTO hotels (name, image) VALUES ('Empty Inn', 'https://img/3.png')")

		for _, bad := range []string{"abc", "0", "-1"} {
			res, _ := f.get("/hotels/"+bad, tok)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode, bad)
		}

		res, _ := f.get(fmt.Sprintf("/hotels/%d", noRooms), tok)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		res, _ = f.get(fmt.Sprintf("/hotels/%d", withRooms+1000), tok)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)

		res, body := f.get(fmt.Sprintf("/hotels/%d", withRooms), tok)
		require.Equal(t, http.StatusOK, res.StatusCode)
		var got struct {
			ID    int64 `json:"id"`
			Rooms []struct {
				Name     string `json:"name"`
				Capacity int    `json:"capacity"`
				HotelID  int64  `json:"hotelId"`
			} `json:"Rooms"`
		}
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, withRooms, got.ID)
		require.Len(t, got.Rooms, 1)
		assert.Equal(t, 2, got.Rooms[0].Capacity)
		assert.Equal(t, withRooms, got.Rooms[0].HotelID)
		assert.True(t, f.mr.Exists(fmt.Sprintf("hotel:%d:rooms", withRooms)), "rooms response should be cached")
	})
}
