package authorization

type Authorizer interface {
	ProduceToken(uid int64) (string, error)
	VerifyToken(ts string) (int64, error)
}
