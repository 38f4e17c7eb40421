package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/live", handler.ListLiveMatches)
	mux.HandleFunc("GET /v1/live/events", handler.StreamLiveEvents)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/scoreboard", handler.GetScoreboard)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/announcements", handler.ListAnnouncements)
}

func registerOperatorRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerOperatorMatchRoutes(mux, handler, verifier)
	registerOperatorScoringRoutes(mux, handler, verifier)
	registerOperatorFestivalRoutes(mux, handler, verifier)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/auto-live", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunAutoLiveJob)))
}

func registerOperatorMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/matches", RequireOperator(verifier, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("PATCH /v1/matches/{matchID}", RequireOperator(verifier, http.HandlerFunc(handler.UpdateMatch)))
	mux.Handle("DELETE /v1/matches/{matchID}", RequireOperator(verifier, http.HandlerFunc(handler.DeleteMatch)))
	mux.Handle("POST /v1/matches/{matchID}/lifecycle", RequireOperator(verifier, http.HandlerFunc(handler.TransitionMatch)))
}

func registerOperatorScoringRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/matches/{matchID}/scoring", RequireOperator(verifier, http.HandlerFunc(handler.GetScoringStatus)))
	mux.Handle("POST /v1/matches/{matchID}/scoring/toss", RequireOperator(verifier, http.HandlerFunc(handler.RecordToss)))
	mux.Handle("POST /v1/matches/{matchID}/scoring/batsmen", RequireOperator(verifier, http.HandlerFunc(handler.RecordBatsmen)))
	mux.Handle("POST /v1/matches/{matchID}/scoring/ball", RequireOperator(verifier, http.HandlerFunc(handler.RecordBall)))
	mux.Handle("POST /v1/matches/{matchID}/scoring/wicket", RequireOperator(verifier, http.HandlerFunc(handler.RecordWicket)))
	mux.Handle("POST /v1/matches/{matchID}/scoring/extra", RequireOperator(verifier, http.HandlerFunc(handler.RecordExtra)))
	mux.Handle("POST /v1/matches/{matchID}/scoring/batter", RequireOperator(verifier, http.HandlerFunc(handler.RecordNewBatter)))
	mux.Handle("POST /v1/matches/{matchID}/scoring/bowler", RequireOperator(verifier, http.HandlerFunc(handler.RecordNewBowler)))
	mux.Handle("POST /v1/matches/{matchID}/scoring/sync", RequireOperator(verifier, http.HandlerFunc(handler.SyncScore)))
}

func registerOperatorFestivalRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams/{teamID}/awards", RequireOperator(verifier, http.HandlerFunc(handler.AwardTeamPoints)))
	mux.Handle("POST /v1/announcements", RequireOperator(verifier, http.HandlerFunc(handler.CreateAnnouncement)))
	mux.Handle("PATCH /v1/announcements/{announcementID}/pin", RequireOperator(verifier, http.HandlerFunc(handler.PinAnnouncement)))
	mux.Handle("DELETE /v1/announcements/{announcementID}", RequireOperator(verifier, http.HandlerFunc(handler.DeleteAnnouncement)))
}
