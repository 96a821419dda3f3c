package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"main/dto"
	"main/repository"
	"main/store"
	"main/usecase"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidators()
}

// newNotesRouter wires the note and analytics routes over an in-memory store,
// with a stub middleware standing in for token verification.
func newNotesRouter(t *testing.T, userID string) *gin.Engine {
	t.Helper()
	notesRepo := repository.NewNotesRepo(store.NewMemoryGateway(), t.TempDir())
	notesService := &usecase.NotesService{NotesRepo: notesRepo}
	analyticsService := &usecase.AnalyticsService{NotesRepo: notesRepo}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
	})
	router.GET("/api/note", func(c *gin.Context) { GetNotesHandler(c, notesService) })
	router.POST("/api/note", func(c *gin.Context) { AddNoteHandler(c, notesService) })
	router.PUT("/api/note/:id", func(c *gin.Context) { UpdateNoteHandler(c, notesService) })
	router.PATCH("/api/note/:id/toggle", func(c *gin.Context) { ToggleNoteStatusHandler(c, notesService) })
	router.DELETE("/api/note/:id", func(c *gin.Context) { DeleteNoteHandler(c, notesService) })
	router.GET("/api/analytics/month/:year/:month", func(c *gin.Context) { GetAnalyticsForMonthHandler(c, analyticsService) })
	router.GET("/api/analytics/date/:year/:month/:day", func(c *gin.Context) { GetTasksForDateHandler(c, analyticsService) })
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatal("marshal request failed", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatal("unmarshal response failed", err)
	}
	return envelope.Data
}

func TestNotesHandlers(t *testing.T) {
	router := newNotesRouter(t, "user-1")

	t.Run("ListEmpty", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/note", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})

	var noteID string

	t.Run("Add", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/note", gin.H{
			"title":    "Buy groceries",
			"priority": "high",
			"dueDate":  "2024-03-15T10:00:00Z",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
		}
		data := dataField(t, w)
		id, _ := data["id"].(string)
		if id == "" {
			t.Fatalf("response missing note id: %v", data)
		}
		noteID = id
		if data["priority"] != "high" {
			t.Errorf("priority = %v, want high", data["priority"])
		}
		if data["isCompleted"] != false {
			t.Errorf("isCompleted = %v, want false", data["isCompleted"])
		}
	})

	t.Run("AddWithoutTitle", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/note", gin.H{"description": "no title"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("AddWithUnknownPriority", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/note", gin.H{
			"title":    "Bad priority",
			"priority": "urgent",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("Toggle", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPatch, "/api/note/"+noteID+"/toggle", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
		}
		data := dataField(t, w)
		if data["isCompleted"] != true {
			t.Errorf("isCompleted = %v, want true after toggle", data["isCompleted"])
		}
	})

	t.Run("ToggleMissingNote", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPatch, "/api/note/no-such-note/toggle", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("Update", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, "/api/note/"+noteID, gin.H{
			"title":    "Buy groceries and milk",
			"priority": "low",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
		}
		data := dataField(t, w)
		if data["title"] != "Buy groceries and milk" {
			t.Errorf("title = %v, want updated title", data["title"])
		}
	})

	t.Run("Delete", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/note/"+noteID, nil)
		if w.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", w.Code)
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		anon := newNotesRouter(t, "")
		w := doJSON(t, anon, http.MethodGet, "/api/note", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestAnalyticsHandlers(t *testing.T) {
	router := newNotesRouter(t, "user-1")

	seed := func(title, priority, due string) {
		w := doJSON(t, router, http.MethodPost, "/api/note", gin.H{
			"title":    title,
			"priority": priority,
			"dueDate":  due,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("seed note failed: %d %s", w.Code, w.Body.String())
		}
	}
	seed("Note A", "high", "2024-03-15T10:00:00Z")
	seed("Note B", "low", "2024-03-20T10:00:00Z")

	t.Run("Month", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/analytics/month/2024/3", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
		}
		data := dataField(t, w)
		if data["highPriorityCount"] != float64(1) {
			t.Errorf("highPriorityCount = %v, want 1", data["highPriorityCount"])
		}
		if data["lowPriorityCount"] != float64(1) {
			t.Errorf("lowPriorityCount = %v, want 1", data["lowPriorityCount"])
		}
		tasks, _ := data["tasks"].([]interface{})
		if len(tasks) != 2 {
			t.Errorf("tasks = %d, want 2", len(tasks))
		}
	})

	t.Run("MonthOutOfRange", func(t *testing.T) {
		for _, path := range []string{
			"/api/analytics/month/2024/13",
			"/api/analytics/month/2024/0",
			"/api/analytics/month/1899/5",
			"/api/analytics/month/2024/abc",
		} {
			w := doJSON(t, router, http.MethodGet, path, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("%s: status = %d, want 400", path, w.Code)
			}
		}
	})

	t.Run("Date", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/analytics/date/2024/3/15", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
		}
		var envelope struct {
			Data []map[string]interface{} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
			t.Fatal("unmarshal response failed", err)
		}
		if len(envelope.Data) != 1 {
			t.Fatalf("tasks = %d, want 1", len(envelope.Data))
		}
		if envelope.Data[0]["title"] != "Note A" {
			t.Errorf("title = %v, want Note A", envelope.Data[0]["title"])
		}
	})

	t.Run("DateDoesNotNormalize", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/analytics/date/2024/2/30", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}
