package services

import (
	"log"
	"log/slog"
	"time"

	"github.com/altivainc/altiva/internal/config"
	"github.com/altivainc/altiva/internal/db"
	"github.com/altivainc/altiva/internal/filestore"
	insight2 "github.com/altivainc/altiva/internal/services/insight"
	report2 "github.com/altivainc/altiva/internal/services/report"
	user2 "github.com/altivainc/altiva/internal/services/user"
	"github.com/altivainc/altiva/pkg/genai"
)

type Services struct {
	User    *user2.UserService
	Report  *report2.ReportService
	Insight *insight2.InsightService
}

func NewServices(conf *config.Config) *Services {
	var userRepo user2.Repository
	var reportRepo report2.Repository

	if conf.STORE_BACKEND == "file" {
		store, err := filestore.Open(conf.STORE_FILE_PATH)
		if err != nil {
			log.Fatalln("Unable to open file store", err.Error())
		}
		slog.Info("Using file store", slog.String("path", conf.STORE_FILE_PATH))

		userRepo = filestore.NewUserRepo(store)
		reportRepo = filestore.NewReportRepo(store)
	} else {
		dbconn := db.NewConn(conf)

		userRepo = user2.NewUserRepo(dbconn)
		reportRepo = report2.NewReportRepo(dbconn)
	}

	if conf.DEMO_LOGIN {
		slog.Warn("Demo login is enabled; the fixture password is accepted against sentinel digests")
	}

	genaiClient := genai.NewClient(&genai.ClientOptions{
		ApiKey: conf.GEMINI_API_KEY,
	})

	return &Services{
		User:    user2.NewUserService(userRepo, conf.DEMO_LOGIN),
		Report:  report2.NewReportService(reportRepo),
		Insight: insight2.NewInsightService(genaiClient, conf.GEMINI_MODEL, time.Duration(conf.AI_TIMEOUT_SECONDS)*time.Second),
	}
}
