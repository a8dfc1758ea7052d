package controllers

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderik79/home-work-63/middleware"
	"github.com/alexanderik79/home-work-63/models"
	"github.com/alexanderik79/home-work-63/repositories"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskController struct {
	Tasks repositories.TaskRepository
}

var protectedTmpl = template.Must(template.New("protected").Parse(`<h1>Protected Page</h1>
<p>Welcome, {{.Email}}</p>
<form method="POST" action="/tasks/add">
  <input name="title" placeholder="New task"><button type="submit">Add</button>
</form>
<ul>
{{range .Tasks}}  <li>{{if .Completed}}[x]{{else}}[ ]{{end}} {{.Title}}</li>
{{end}}</ul>
<a href="/logout">Logout</a>
`))

// Protected renders the task list page for the session's user, newest
// tasks first.
func (tc *TaskController) Protected(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.String(http.StatusUnauthorized, "Unauthorized. Please log in.")
		return
	}

	tasks, err := tc.Tasks.List(c.Request.Context(), user.ID)
	if err != nil {
		log.Println("[TASKS] List error:", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := protectedTmpl.Execute(c.Writer, gin.H{"Email": user.Email, "Tasks": tasks}); err != nil {
		log.Println("[TASKS] Template error:", err)
	}
}

func (tc *TaskController) Add(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	title := c.PostForm("title")
	if title == "" {
		c.String(http.StatusBadRequest, "Title is required")
		return
	}

	if _, err := tc.Tasks.Create(c.Request.Context(), user.ID, title); err != nil {
		log.Println("[TASKS] Add error:", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Redirect(http.StatusFound, "/protected")
}

func (tc *TaskController) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid task id")
		return
	}

	err = tc.Tasks.Delete(c.Request.Context(), user.ID, taskID)
	if errors.Is(err, repositories.ErrNotOwned) {
		c.String(http.StatusForbidden, "Forbidden")
		return
	}
	if err != nil {
		log.Println("[TASKS] Delete error:", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Redirect(http.StatusFound, "/protected")
}

// Update applies a partial update from the submitted form fields. A zero
// matched count means the task is not this owner's and yields 403; a
// matched but unmodified task is a successful no-op.
func (tc *TaskController) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid task id")
		return
	}

	var patch repositories.TaskPatch
	if title, ok := c.GetPostForm("title"); ok {
		patch.Title = &title
	}
	if raw, ok := c.GetPostForm("completed"); ok {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			c.String(http.StatusBadRequest, "Invalid completed value")
			return
		}
		patch.Completed = &completed
	}

	matched, _, err := tc.Tasks.Update(c.Request.Context(), user.ID, taskID, patch)
	if err != nil {
		log.Println("[TASKS] Update error:", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	if matched == 0 {
		c.String(http.StatusForbidden, "Forbidden")
		return
	}
	c.Redirect(http.StatusFound, "/protected")
}

func (tc *TaskController) Replace(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid task id")
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.String(http.StatusBadRequest, "Title is required")
		return
	}
	completed, _ := strconv.ParseBool(c.DefaultPostForm("completed", "false"))

	matched, err := tc.Tasks.Replace(c.Request.Context(), user.ID, taskID, title, completed)
	if err != nil {
		log.Println("[TASKS] Replace error:", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	if matched == 0 {
		c.String(http.StatusForbidden, "Forbidden")
		return
	}
	c.Redirect(http.StatusFound, "/protected")
}

func (tc *TaskController) InsertMany(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var drafts []models.TaskDraft
	if err := c.ShouldBindJSON(&drafts); err != nil {
		c.String(http.StatusBadRequest, "Invalid task list")
		return
	}
	if len(drafts) == 0 {
		c.String(http.StatusBadRequest, "Task list is empty")
		return
	}

	count, err := tc.Tasks.InsertMany(c.Request.Context(), user.ID, drafts)
	if err != nil {
		log.Println("[TASKS] InsertMany error:", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.String(http.StatusOK, "Inserted %d tasks", count)
}

func (tc *TaskController) UpdateMany(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	count, err := tc.Tasks.CompleteAll(c.Request.Context(), user.ID)
	if err != nil {
		log.Println("[TASKS] UpdateMany error:", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.String(http.StatusOK, "Updated %d tasks", count)
}

func (tc *TaskController) DeleteMany(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	count, err := tc.Tasks.PurgeCompleted(c.Request.Context(), user.ID)
	if err != nil {
		log.Println("[TASKS] DeleteMany error:", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.String(http.StatusOK, "Deleted %d tasks", count)
}

// Stream writes the task list as chunked plain text, one line per task,
// flushing after each record. The repository closes its cursor when the
// request context is cancelled, so a client abort releases it.
func (tc *TaskController) Stream(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	ctx := c.Request.Context()
	tasks, errc := tc.Tasks.Stream(ctx, user.ID)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)

	for task := range tasks {
		mark := " "
		if task.Completed {
			mark = "x"
		}
		fmt.Fprintf(c.Writer, "[%s] %s (%s)\n", mark, task.Title, task.CreatedAt.Format(time.RFC3339))
		c.Writer.Flush()
	}

	if err := <-errc; err != nil {
		// Headers are already out; the broken stream is all the client sees.
		log.Println("[TASKS] Stream error:", err)
	}
}

func (tc *TaskController) Stats(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	stats, err := tc.Tasks.Stats(c.Request.Context(), user.ID)
	if err != nil {
		log.Println("[TASKS] Stats error:", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, stats)
}
