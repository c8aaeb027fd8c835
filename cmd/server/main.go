package main

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"blogicum/internal/config"
	"blogicum/internal/db"
	"blogicum/internal/middleware"
	"blogicum/internal/router"
	"blogicum/internal/store"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, reading env vars from system")
	}
	cfg := config.Load()

	conn := db.Init(cfg.DatabaseURL)
	repos := store.NewGorm(conn)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("blogicum_session", sessionStore))

	r.HTMLRender = loadTemplates("./web/templates")
	r.Static("/static", "./web/static")

	r.Use(middleware.LoadUser(repos.Users))

	router.RegisterRoutes(r, repos, cfg)

	log.Info().Str("port", cfg.Port).Msg("blogicum server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}
	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Every view renders inside the shared layout files.
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"timeAgo": func(t interface{}) string {
			timeVal, ok := t.(time.Time)
			if !ok {
				return ""
			}
			seconds := int(time.Since(timeVal).Seconds())
			switch {
			case seconds < 60:
				return fmt.Sprintf("%ds ago", seconds)
			case seconds < 3600:
				return fmt.Sprintf("%dm ago", seconds/60)
			case seconds < 86400:
				return fmt.Sprintf("%dh ago", seconds/3600)
			case seconds < 2592000:
				return fmt.Sprintf("%dd ago", seconds/86400)
			case seconds < 31536000:
				return fmt.Sprintf("%dmo ago", seconds/2592000)
			}
			return fmt.Sprintf("%dy ago", seconds/31536000)
		},
		"dateFmt": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
	}

	views := []string{
		"posts/list.html",
		"posts/detail.html",
		"posts/form.html",
		"posts/delete.html",
		"comments/form.html",
		"comments/delete.html",
		"category/list.html",
		"profile/detail.html",
		"profile/edit.html",
		"auth/login.html",
		"auth/register.html",
		"error.html",
	}
	for _, view := range views {
		r.AddFromFilesFuncs(view, funcMap, assemble(templatesDir+"/views/"+view)...)
	}

	return r
}
