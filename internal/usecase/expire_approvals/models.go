package expire_approvals

// Response результат одного прохода
// Skipped=true, если лок удерживается другим инстансом - проход пропущен
type Response struct {
	Skipped    bool
	ExpiredIDs []int64
}
