package featured

import (
	"context"
	"fmt"

	"github.com/signalfire/auto-featured/internal/db/controller/post"
)

// Backfill runs the decision over every canonical post of a site whose type is enabled.
// It returns the number of posts per outcome.
func (a *Assigner) Backfill(ctx context.Context, siteID uint64) (map[string]int, error) {
	settings, err := a.settings.Load(siteID)
	if err != nil {
		return nil, fmt.Errorf("load settings of site %d: %w", siteID, err)
	}

	counts := map[string]int{}

	if len(settings.EnabledContentTypes) == 0 {
		return counts, nil
	}

	posts, err := post.ListCanonical(a.db.WithContext(ctx), siteID, settings.EnabledContentTypes)
	if err != nil {
		return nil, fmt.Errorf("list posts of site %d: %w", siteID, err)
	}

	for i := range posts {
		if err := ctx.Err(); err != nil {
			return counts, err
		}

		counts[a.Assign(ctx, &posts[i])]++
	}

	a.log.Info().Uint64("site", siteID).Int("posts", len(posts)).Interface("outcomes", counts).Msg("backfill done")

	return counts, nil
}
