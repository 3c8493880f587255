package admin

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	SpawnSettings,
	SpawnStatus,
	ForceSpawn,
	ClearSpawn,
	Grant,
	ResetUser,
	UploadCard,
	UpdateCard,
	DeleteCard,
	AddUploader,
	RemoveUploader,
}
