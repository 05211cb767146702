package integration_test

const (
	TestUserId      = 1
	OtherUserId     = 2
	TestShowtimeId  = 1
	StartedShowtime = 2
	TestMovieTitle  = "The Matrix"
	TestSeatPrice   = 100_000
	TestJWTSecret   = "integration-secret"
)
