package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/modkeeper/mod-case-api/api"
	"github.com/modkeeper/mod-case-api/api/scheduler"
	"github.com/modkeeper/mod-case-api/caseid"
	"github.com/modkeeper/mod-case-api/config"
	"github.com/modkeeper/mod-case-api/databases"
	"github.com/modkeeper/mod-case-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	m := api.Auth{Conf: &a.Config}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	caseDB := databases.NewCaseDatabase(a.dbHelper)
	c := Case{
		DB:        caseDB,
		UpdateDB:  databases.NewCaseUpdateDatabase(a.dbHelper),
		Allocator: caseid.NewAllocator(caseDB),
	}
	s := Stats{DB: caseDB}
	ma := MassAction{DB: databases.NewMassActionDatabase(a.dbHelper)}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/case", api.Middleware(http.HandlerFunc(c.CreateCaseHandler))).Methods("POST")
	apiCreate.Handle("/case/{case_id}", api.Middleware(http.HandlerFunc(c.CaseByIDHandler))).Methods("GET")

	apiCreate.Handle("/guild/{guild_id}/case/{case_id}", api.Middleware(http.HandlerFunc(c.CaseInGuildHandler))).Methods("GET")
	apiCreate.Handle("/guild/{guild_id}/case/{case_id}", api.Middleware(http.HandlerFunc(c.UpdateCaseFieldHandler))).Methods("PATCH")
	apiCreate.Handle("/guild/{guild_id}/case/{case_id}/close", api.Middleware(http.HandlerFunc(c.CloseCaseHandler))).Methods("PUT")
	apiCreate.Handle("/guild/{guild_id}/case/{case_id}/updates", api.Middleware(http.HandlerFunc(c.CaseUpdatesHandler))).Methods("GET")

	apiCreate.Handle("/guild/{guild_id}/cases", api.Middleware(http.HandlerFunc(c.CasesListHandler))).Methods("GET")
	apiCreate.Handle("/guild/{guild_id}/cases/search", api.Middleware(http.HandlerFunc(c.SearchCasesHandler))).Methods("GET")
	apiCreate.Handle("/guild/{guild_id}/cases/recent", api.Middleware(http.HandlerFunc(c.RecentCasesHandler))).Methods("GET")
	apiCreate.Handle("/guild/{guild_id}/user/{user_id}/cases", api.Middleware(http.HandlerFunc(c.UserCasesHandler))).Methods("GET")
	apiCreate.Handle("/guild/{guild_id}/user/{user_id}/punishments", api.Middleware(http.HandlerFunc(c.ActivePunishmentsHandler))).Methods("GET")

	apiCreate.Handle("/guild/{guild_id}/stats", api.Middleware(http.HandlerFunc(s.CaseStatsHandler))).Methods("GET")
	apiCreate.Handle("/guild/{guild_id}/stats/moderators", api.Middleware(http.HandlerFunc(s.ModeratorStatsHandler))).Methods("GET")

	apiCreate.Handle("/mass-action", api.Middleware(http.HandlerFunc(ma.CreateMassActionHandler))).Methods("POST")
	apiCreate.Handle("/mass-action/{action_id}", api.Middleware(http.HandlerFunc(ma.MassActionByIDHandler))).Methods("GET")
	apiCreate.Handle("/mass-action/{action_id}/complete", api.Middleware(http.HandlerFunc(ma.CompleteMassActionHandler))).Methods("PUT")
	apiCreate.Handle("/guild/{guild_id}/mass-actions", api.Middleware(http.HandlerFunc(ma.MassActionsByGuildHandler))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("mod-case-api has connected to the database")

	// initialize api router
	a.initializeRoutes()

	// start the punishment expiry sweep
	a.Scheduler = scheduler.NewScheduler(databases.NewCaseDatabase(a.dbHelper))
	a.Scheduler.Start()

	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
