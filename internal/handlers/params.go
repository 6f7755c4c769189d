package handlers

import (
	"barter/models"
	"net/http"
	"strconv"
	"strings"
)

// queryInt разбирает целое из query; пустое или некорректное значение дает 0
func queryInt(r *http.Request, keys ...string) int {
	for _, key := range keys {
		raw := strings.TrimSpace(r.URL.Query().Get(key))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// parseAdListParams достает фильтры и пагинацию списка объявлений.
// Некорректные значения не считаются ошибкой: сервис приводит их к значениям по умолчанию.
func parseAdListParams(r *http.Request) (f models.AdFilter, page, pageSize int) {
	q := r.URL.Query()
	f = models.AdFilter{
		Query:     q.Get("query"),
		Category:  q.Get("category"),
		Condition: models.Condition(q.Get("condition")),
	}
	return f, queryInt(r, "page"), queryInt(r, "page_size", "paginate_by")
}

func parseProposalFilter(r *http.Request) models.ProposalFilter {
	q := r.URL.Query()
	return models.ProposalFilter{
		SenderTitle:   q.Get("sender"),
		ReceiverTitle: q.Get("receiver"),
		Status:        models.ProposalStatus(q.Get("status")),
	}
}
