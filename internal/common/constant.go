package common

const (
	// AuthorizationHeaderName is the gRPC metadata key carrying the caller's
	// identity token as "Bearer <jwt>".
	AuthorizationHeaderName = "authorization"

	// CertificateTrailerName is the gRPC trailer key carrying the response
	// certificate.
	CertificateTrailerName = "certificate"

	// AnonymousPrincipal is the principal text of the unauthenticated identity.
	AnonymousPrincipal = "2vxsx-fae"
)
