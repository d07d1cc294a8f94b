package models

// VoteType - тип голоса гражданина за инцидент
type VoteType string

const (
	VoteYes   VoteType = "yes"
	VoteNo    VoteType = "no"
	VotePhoto VoteType = "photo"
)

// Весовые коэффициенты голосов. Должны совпадать с серверными,
// чтобы сверка никогда не "откатывала" оптимистичное применение.
const (
	voteYesIncrement = 0.10
	voteNoDecrement  = 0.15
)

// ValidVoteType проверяет известность типа голоса
func ValidVoteType(t VoteType) bool {
	return t == VoteYes || t == VoteNo || t == VotePhoto
}

// ApplyVote применяет голос к паре (severity, verifiedCount) и возвращает
// новые значения. Функция чистая: одна и та же и для оптимистичного
// применения на узле, и для повторного наложения при сверке.
//   - yes: severity +0.10 (не выше 1), verifiedCount +1
//   - no:  severity -0.15 (не ниже 0), verifiedCount без изменений
//   - photo: только verifiedCount +1
func ApplyVote(severity float64, verifiedCount int, vote VoteType) (float64, int) {
	switch vote {
	case VoteYes:
		severity += voteYesIncrement
		verifiedCount++
	case VoteNo:
		severity -= voteNoDecrement
	case VotePhoto:
		verifiedCount++
	}
	if severity > 1 {
		severity = 1
	}
	if severity < 0 {
		severity = 0
	}
	return severity, verifiedCount
}

// ApplyVote применяет голос к инциденту на месте
func (i *Incident) ApplyVote(vote VoteType) {
	i.Severity, i.VerifiedCount = ApplyVote(i.Severity, i.VerifiedCount, vote)
}
