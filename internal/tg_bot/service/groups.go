package service

// handlerGroups lists every handler group in registration order.
func (b *TgBotServices) handlerGroups() []HandlerGroup {
	return []HandlerGroup{
		b.basicGroup(),
		b.moderationGroup(),
		b.adminGroup(),
		b.groupManagementGroup(),
		b.infoGroup(),
		b.togglesGroup(),
		b.securityGroup(),
		b.funGroup(),
		b.aiGroup(),
		b.defineGroup(),
		b.translateGroup(),
		b.weatherGroup(),
		b.utilityGroup(),
		b.roleplayGroup(),
		b.gamesGroup(),
	}
}
