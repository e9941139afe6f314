package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth  = RouteApiV1 + "/auth"
	RouteLogin = RouteAuth + "/login"

	// users
	RouteUsers      = RouteApiV1 + "/users"
	RouteUserSelf   = RouteUsers + "/me"
	RouteUserByName = RouteUsers + "/:username"

	// files
	RouteFiles        = RouteApiV1 + "/files"
	RouteFile         = RouteFiles + "/:file_id"
	RouteFileDownload = RouteFile + "/download"
	RouteFileLinks    = RouteFile + "/links"

	// links
	RouteLinks        = RouteApiV1 + "/links"
	RouteLink         = RouteLinks + "/:href"
	RouteLinkDownload = RouteApiV1 + "/get"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
