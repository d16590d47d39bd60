// internal/app/features/pages/programs.go
package pages

import "github.com/bnomad/website/internal/domain/models"

// Program is one entry in the fixed program catalog. All text fields
// are bilingual; the catalog itself is static content, not a database
// entity.
type Program struct {
	Slug          string
	Title         models.Translated
	Tagline       models.Translated
	Description   models.Translated
	Duration      models.Translated
	Location      models.Translated
	WhoShouldJoin models.Translated
	Highlights    []models.Translated
	Included      []models.Translated
}

var programCatalog = []Program{
	{
		Slug:          "spain-roadtrip",
		Title:         models.Translated{EN: "Spain Roadtrip", KO: "스페인 로드트립"},
		Tagline:       models.Translated{EN: "Two weeks of work and wandering across northern Spain.", KO: "스페인 북부를 가로지르는 2주간의 일과 여행."},
		Description:   models.Translated{EN: "A travelling workation for a small crew of remote workers. Mornings are for deep work from coworking spaces along the route; afternoons and weekends are for the road.", KO: "소규모 원격 근무자 그룹을 위한 이동형 워케이션입니다. 오전에는 경로를 따라 있는 코워킹 스페이스에서 집중 업무를, 오후와 주말에는 여행을 즐깁니다."},
		Duration:      models.Translated{EN: "2 weeks", KO: "2주"},
		Location:      models.Translated{EN: "Northern Spain", KO: "스페인 북부"},
		WhoShouldJoin: models.Translated{EN: "Remote workers who can keep their own schedule and want to share the road with a small, committed group.", KO: "자신의 일정을 스스로 관리할 수 있고, 소규모 그룹과 함께 여행하고 싶은 원격 근무자."},
		Highlights: []models.Translated{
			{EN: "Coworking stops in four cities", KO: "네 개 도시의 코워킹 스페이스"},
			{EN: "Shared vans and accommodation", KO: "차량과 숙소 공유"},
			{EN: "Weekly community dinners", KO: "주간 커뮤니티 디너"},
		},
		Included: []models.Translated{
			{EN: "Accommodation and transport", KO: "숙박 및 이동"},
			{EN: "Coworking day passes", KO: "코워킹 이용권"},
			{EN: "Group activities", KO: "그룹 액티비티"},
		},
	},
	{
		Slug:          "lab-tour",
		Title:         models.Translated{EN: "Lab Tour", KO: "랩 투어"},
		Tagline:       models.Translated{EN: "Visit the studios and workshops of makers we admire.", KO: "우리가 존경하는 메이커들의 스튜디오와 워크숍 방문."},
		Description:   models.Translated{EN: "A guided tour of independent studios, fabrication labs, and craft workshops. Meet the people behind the work and see how they run their practice.", KO: "독립 스튜디오, 제작 랩, 공예 워크숍을 둘러보는 가이드 투어입니다. 작업 뒤에 있는 사람들을 만나고 그들의 작업 방식을 직접 봅니다."},
		Duration:      models.Translated{EN: "3 days", KO: "3일"},
		Location:      models.Translated{EN: "Seoul", KO: "서울"},
		WhoShouldJoin: models.Translated{EN: "Designers, engineers, and founders curious about how independent studios operate day to day.", KO: "독립 스튜디오의 일상적인 운영 방식이 궁금한 디자이너, 엔지니어, 창업자."},
		Highlights: []models.Translated{
			{EN: "Behind-the-scenes studio visits", KO: "스튜디오 비하인드 투어"},
			{EN: "Conversations with founders", KO: "창업자와의 대화"},
			{EN: "Hands-on workshop session", KO: "핸즈온 워크숍 세션"},
		},
		Included: []models.Translated{
			{EN: "All studio visits", KO: "모든 스튜디오 방문"},
			{EN: "Local transport", KO: "현지 이동"},
			{EN: "Workshop materials", KO: "워크숍 재료"},
		},
	},
	{
		Slug:          "jeju-house",
		Title:         models.Translated{EN: "Jeju House", KO: "제주 하우스"},
		Tagline:       models.Translated{EN: "A co-living residency on Jeju island.", KO: "제주도의 코리빙 레지던시."},
		Description:   models.Translated{EN: "A month-long co-living residency in a shared house near the sea. Residents keep their own work while sharing meals, a studio, and the island.", KO: "바다 근처 셰어하우스에서 한 달간 진행되는 코리빙 레지던시입니다. 각자의 일을 유지하면서 식사와 작업실, 그리고 섬을 함께 나눕니다."},
		Duration:      models.Translated{EN: "1 month", KO: "1개월"},
		Location:      models.Translated{EN: "Jeju, Korea", KO: "제주"},
		WhoShouldJoin: models.Translated{EN: "Anyone with a self-directed project who wants a slower month among other makers.", KO: "다른 메이커들과 함께 느린 한 달을 보내고 싶은, 스스로 진행하는 프로젝트가 있는 사람."},
		Highlights: []models.Translated{
			{EN: "Private room in a shared house", KO: "셰어하우스 개인실"},
			{EN: "Shared studio space", KO: "공용 작업실"},
			{EN: "Weekly island excursions", KO: "주간 섬 나들이"},
		},
		Included: []models.Translated{
			{EN: "Accommodation for the month", KO: "한 달 숙박"},
			{EN: "Studio access", KO: "작업실 이용"},
			{EN: "Community events", KO: "커뮤니티 이벤트"},
		},
	},
	{
		Slug:          "popup-collaborations",
		Title:         models.Translated{EN: "Popup Collaborations", KO: "팝업 콜라보레이션"},
		Tagline:       models.Translated{EN: "Short, intense builds with partner communities.", KO: "파트너 커뮤니티와 함께하는 짧고 밀도 있는 협업."},
		Description:   models.Translated{EN: "Occasional popup events run with partner communities and venues. Each one is a short, focused collaboration with its own theme and output.", KO: "파트너 커뮤니티 및 공간과 함께 비정기적으로 여는 팝업 이벤트입니다. 각 팝업은 고유한 주제와 결과물을 가진 짧고 집중된 협업입니다."},
		Duration:      models.Translated{EN: "1 weekend", KO: "주말"},
		Location:      models.Translated{EN: "Varies", KO: "장소 상이"},
		WhoShouldJoin: models.Translated{EN: "Communities and venues looking for a co-hosted event, and individuals who like building in a weekend sprint.", KO: "공동 주최 이벤트를 찾는 커뮤니티와 공간, 그리고 주말 스프린트로 무언가 만드는 것을 좋아하는 개인."},
		Highlights: []models.Translated{
			{EN: "Co-hosted with a partner community", KO: "파트너 커뮤니티와 공동 주최"},
			{EN: "A concrete output per event", KO: "이벤트마다 구체적인 결과물"},
			{EN: "Open call for participants", KO: "참가자 오픈콜"},
		},
		Included: []models.Translated{
			{EN: "Venue and materials", KO: "공간 및 재료"},
			{EN: "Meals during the event", KO: "행사 기간 식사"},
			{EN: "Documentation of the output", KO: "결과물 기록"},
		},
	},
}

// findProgram returns the catalog entry for slug, or nil.
func findProgram(slug string) *Program {
	for i := range programCatalog {
		if programCatalog[i].Slug == slug {
			return &programCatalog[i]
		}
	}
	return nil
}
