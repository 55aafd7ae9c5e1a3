package main

import (
	"context"

	authdto "atom_video/internal/api/auth/dto"
	authmodels "atom_video/internal/api/auth/models"
	authsvc "atom_video/internal/api/auth/service"
	collectionsvc "atom_video/internal/api/collection/service"
	commentsvc "atom_video/internal/api/comment/service"
	mediadto "atom_video/internal/api/media/dto"
	mediasvc "atom_video/internal/api/media/service"
	"atom_video/internal/logger"
)

// InitDefaultData nạp dữ liệu mẫu cho môi trường phát triển: một tài khoản
// admin, hai tài khoản thường, vài media đã phát hành, bình luận và một
// danh sách phát. Store nằm hoàn toàn trong bộ nhớ nên dữ liệu này được tạo
// lại mỗi lần server start khi INITMODE bật.
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	ctx := context.Background()
	userService := authsvc.NewUserService()
	mediaService := mediasvc.NewMediaService()
	commentService := commentsvc.NewCommentService()
	collectionService := collectionsvc.NewCollectionService()

	// 1. Tài khoản admin
	admin, err := userService.Register(ctx, &authdto.RegisterInput{
		Handle:      "admin",
		Email:       "admin@atomvideo.dev",
		Password:    "admin12345",
		DisplayName: "Quản trị viên",
	})
	if err != nil {
		log.Warnf("Failed to seed admin user: %v", err)
		return
	}
	// Register luôn tạo member; nâng quyền trực tiếp trên bảng
	_, err = authsvc.UserTable().UpdateByID(admin.ID, func(u *authmodels.User) error {
		u.Role = authmodels.RoleAdmin
		u.Verified = true
		return nil
	})
	if err != nil {
		log.Warnf("Failed to promote admin user: %v", err)
	}
	log.Info("✅ [INIT] Step 1: Admin account seeded")

	// 2. Hai tài khoản thường
	alice, err := userService.Register(ctx, &authdto.RegisterInput{
		Handle:      "alice",
		Email:       "alice@atomvideo.dev",
		Password:    "alice12345",
		DisplayName: "Alice Nguyễn",
	})
	if err != nil {
		log.Warnf("Failed to seed user alice: %v", err)
		return
	}
	bob, err := userService.Register(ctx, &authdto.RegisterInput{
		Handle:      "bob",
		Email:       "bob@atomvideo.dev",
		Password:    "bob1234567",
		DisplayName: "Bob Trần",
	})
	if err != nil {
		log.Warnf("Failed to seed user bob: %v", err)
		return
	}
	log.Info("✅ [INIT] Step 2: Member accounts seeded")

	// 3. Media đã phát hành của alice
	seedMedia := []mediadto.CreateMediaInput{
		{
			Title:           "Hướng dẫn Go cơ bản",
			Description:     "Bắt đầu với Go từ con số không",
			Category:        "education",
			Tags:            []string{"go", "tutorial"},
			PlaybackURL:     "https://cdn.atomvideo.dev/media/go-basics.m3u8",
			ThumbnailURL:    "https://cdn.atomvideo.dev/thumbs/go-basics.jpg",
			DurationSeconds: 754,
			Visibility:      "public",
		},
		{
			Title:           "Vlog du lịch Đà Lạt",
			Description:     "Ba ngày ở Đà Lạt",
			Category:        "travel",
			Tags:            []string{"vlog", "dalat"},
			PlaybackURL:     "https://cdn.atomvideo.dev/media/dalat-vlog.m3u8",
			ThumbnailURL:    "https://cdn.atomvideo.dev/thumbs/dalat-vlog.jpg",
			DurationSeconds: 1321,
			Visibility:      "public",
		},
	}
	var mediaIDs []string
	for i := range seedMedia {
		item, err := mediaService.Create(ctx, alice.ID, &seedMedia[i])
		if err != nil {
			log.Warnf("Failed to seed media %q: %v", seedMedia[i].Title, err)
			continue
		}
		if _, err := mediaService.Publish(ctx, item.ID, alice.ID); err != nil {
			log.Warnf("Failed to publish media %q: %v", seedMedia[i].Title, err)
			continue
		}
		mediaIDs = append(mediaIDs, item.ID)
	}
	log.Infof("✅ [INIT] Step 3: %d media items seeded", len(mediaIDs))

	// 4. Bình luận của bob trên media đầu tiên
	if len(mediaIDs) > 0 {
		root, err := commentService.Add(ctx, bob.ID, mediaIDs[0], "Video rất hữu ích, cảm ơn bạn!", "")
		if err != nil {
			log.Warnf("Failed to seed comment: %v", err)
		} else {
			if _, err := commentService.Add(ctx, alice.ID, mediaIDs[0], "Cảm ơn bạn đã xem!", root.ID); err != nil {
				log.Warnf("Failed to seed reply: %v", err)
			}
		}
		log.Info("✅ [INIT] Step 4: Comments seeded")
	}

	// 5. Danh sách phát của bob với toàn bộ media đã seed
	playlist, err := collectionService.Create(ctx, bob.ID, "Xem cuối tuần", "Danh sách để dành cuối tuần", "public")
	if err != nil {
		log.Warnf("Failed to seed playlist: %v", err)
	} else {
		for _, mediaID := range mediaIDs {
			if _, err := collectionService.AddItem(ctx, playlist.ID, bob.ID, mediaID); err != nil {
				log.Warnf("Failed to add media %s to seeded playlist: %v", mediaID, err)
			}
		}
		log.Info("✅ [INIT] Step 5: Playlist seeded")
	}

	log.Info("✅ [INIT] InitDefaultData completed successfully")
}
